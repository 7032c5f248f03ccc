package domain

type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunPaused    RunState = "paused"
	RunCompleted RunState = "completed"
)

type CountMode string

const (
	CountDown CountMode = "countdown"
	CountUp   CountMode = "countup"
)

// SlotState describes what the review screen shows for the current head.
type SlotState string

const (
	SlotEmpty        SlotState = "empty"
	SlotShowingFront SlotState = "front"
	SlotShowingBack  SlotState = "back"
)

type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)
