package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyfocus/internal/config"
	"github.com/alexanderramin/studyfocus/internal/devserver"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/repository"
	"github.com/alexanderramin/studyfocus/internal/service"
	"github.com/alexanderramin/studyfocus/internal/testutil"
)

// testStores are the SQLite repositories behind a testApp.
type testStores struct {
	subjects   *repository.SQLiteSubjectRepo
	sessions   *repository.SQLiteSessionRepo
	flashcards *repository.SQLiteFlashcardRepo
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *testStores) {
	t.Helper()
	database := testutil.NewTestDB(t)

	st := &testStores{
		subjects:   repository.NewSQLiteSubjectRepo(database),
		sessions:   repository.NewSQLiteSessionRepo(database),
		flashcards: repository.NewSQLiteFlashcardRepo(database, testutil.NewTestUoW(database), 24*time.Hour),
	}

	app := &App{
		Config: &config.Config{
			Backend: domain.BackendLocal,
			Timer:   config.TimerConfig{RequireSubject: true},
			Review:  config.ReviewConfig{RequeueAfter: 24 * time.Hour},
			Server:  config.ServerConfig{Addr: "127.0.0.1:0"},
		},
		Backend: service.Backend{
			Sessions:   st.sessions,
			History:    st.sessions,
			Flashcards: st.flashcards,
			Cards:      st.flashcards,
			Subjects:   st.subjects,
		},
		SubjectWriter:  st.subjects,
		SessionRemover: st.sessions,
		Serve: &devserver.Deps{
			Subjects:   st.subjects,
			Sessions:   st.sessions,
			Flashcards: st.flashcards,
		},
		Observer:   service.NoopUseCaseObserver{},
		Scorer:     service.FixedScorer(90),
		TickPeriod: time.Millisecond,
	}
	return app, st
}

func seedSubject(t *testing.T, st *testStores, name string) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(name)
	require.NoError(t, st.subjects.CreateSubject(context.Background(), s))
	return s
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "studyfocus")
	assert.Contains(t, output, "focus")
	assert.Contains(t, output, "review")
}

func TestRootCmd_ConfigureRunsBeforeCommand(t *testing.T) {
	app, _ := testApp(t)
	var seen []string
	app.Configure = func(cmd *cobra.Command) error {
		seen = append(seen, cmd.Name(), ConfigFile(cmd))
		return nil
	}

	_, err := executeCmd(t, app, "--config", "/tmp/sf.yaml", "subject", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"list", "/tmp/sf.yaml"}, seen)
}

func TestRootCmd_ConfigureErrorStopsCommand(t *testing.T) {
	app, _ := testApp(t)
	app.Configure = func(*cobra.Command) error { return assert.AnError }

	_, err := executeCmd(t, app, "subject", "list")
	assert.ErrorIs(t, err, assert.AnError)
}

// --- subject ---

func TestSubjectCmd_AddThenList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "subject", "add", "--name", "Linear Algebra")
	require.NoError(t, err)
	assert.Contains(t, out, "Added subject Linear Algebra")

	out, err = executeCmd(t, app, "subject", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Linear Algebra")
	assert.Contains(t, out, "NAME")
}

func TestSubjectCmd_AddRequiresNameWhenNotInteractive(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "subject", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")
}

func TestSubjectCmd_AddDuplicate(t *testing.T) {
	app, st := testApp(t)
	seedSubject(t, st, "Physics")

	_, err := executeCmd(t, app, "subject", "add", "--name", "Physics")
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestSubjectCmd_ListEmpty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "subject", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No subjects yet")
}

// --- card and review ---

func TestCardCmd_AddShowsInReviewList(t *testing.T) {
	app, st := testApp(t)
	seedSubject(t, st, "Biology")

	out, err := executeCmd(t, app, "card", "add", "--subject", "biology", "--front", "What is ATP?", "--back", "Energy currency")
	require.NoError(t, err)
	assert.Contains(t, out, "Added card")

	out, err = executeCmd(t, app, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Reviewing 1 card today")
	assert.Contains(t, out, "What is ATP?")
	assert.Contains(t, out, "Biology")
}

func TestCardCmd_UnknownSubject(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "card", "add", "--subject", "nope", "--front", "Q", "--back", "A")
	assert.ErrorIs(t, err, errUnknownSubject)
}

func TestCardCmd_RequiresFrontAndBack(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "card", "add", "--front", "Q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--front and --back are required")
}

func TestReviewListCmd_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No cards due")
}

func TestReviewRateCmd_RequeuesHead(t *testing.T) {
	app, st := testApp(t)
	ctx := context.Background()
	first := testutil.NewTestFlashcard("", testutil.WithDueAt(time.Now().UTC().Add(-2*time.Hour)))
	second := testutil.NewTestFlashcard("", testutil.WithDueAt(time.Now().UTC().Add(-time.Hour)))
	require.NoError(t, st.flashcards.CreateFlashcard(ctx, first))
	require.NoError(t, st.flashcards.CreateFlashcard(ctx, second))

	out, err := executeCmd(t, app, "review", "rate", "good")
	require.NoError(t, err)
	assert.Contains(t, out, "as good; 1 left")

	n, err := st.flashcards.CountReviews(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	due, err := st.flashcards.FetchDue(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, second.ID, due[0].ID)
}

func TestReviewRateCmd_EmptyQueue(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "review", "rate", "easy")
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)
}

func TestReviewRateCmd_UnknownRating(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "review", "rate", "meh")
	assert.ErrorIs(t, err, domain.ErrInvalidQuality)
}

func TestReviewCmd_NeedsTerminal(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "review")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- session ---

func TestSessionListCmd_ShowsRecords(t *testing.T) {
	app, st := testApp(t)
	ctx := context.Background()
	math := seedSubject(t, st, "Math")
	art := seedSubject(t, st, "Art")
	require.NoError(t, st.sessions.SubmitSession(ctx, testutil.NewTestSessionRecord(math.ID)))
	require.NoError(t, st.sessions.SubmitSession(ctx, testutil.NewTestSessionRecord(art.ID,
		testutil.WithEndTime(time.Now().Add(-time.Hour)), testutil.WithDurationMinutes(50))))

	out, err := executeCmd(t, app, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "Art")
	assert.Contains(t, out, "2 sessions, 1h 15m total")

	out, err = executeCmd(t, app, "session", "list", "--subject", "math")
	require.NoError(t, err)
	assert.Contains(t, out, "Math")
	assert.NotContains(t, out, "Art")
	assert.Contains(t, out, "1 sessions, 25m total")
}

func TestSessionListCmd_RejectsNonPositiveDays(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "session", "list", "--days", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--days must be positive")
}

func TestSessionStatsCmd(t *testing.T) {
	app, st := testApp(t)
	ctx := context.Background()
	math := seedSubject(t, st, "Math")
	require.NoError(t, st.sessions.SubmitSession(ctx, testutil.NewTestSessionRecord(math.ID, testutil.WithFocusScore(70))))
	require.NoError(t, st.sessions.SubmitSession(ctx, testutil.NewTestSessionRecord(math.ID,
		testutil.WithEndTime(time.Now().Add(-2*time.Hour)), testutil.WithFocusScore(90))))

	out, err := executeCmd(t, app, "session", "stats", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 7 days")
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "80")
	assert.Contains(t, out, "Total: 50m")
}

func TestSessionRemoveCmd(t *testing.T) {
	app, st := testApp(t)
	ctx := context.Background()
	math := seedSubject(t, st, "Math")
	rec := testutil.NewTestSessionRecord(math.ID)
	require.NoError(t, st.sessions.SubmitSession(ctx, rec))

	out, err := executeCmd(t, app, "session", "remove", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Session removed")

	_, err = executeCmd(t, app, "session", "remove", rec.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRemoveCmd_RemoteBackend(t *testing.T) {
	app, _ := testApp(t)
	app.SessionRemover = nil

	_, err := executeCmd(t, app, "session", "remove", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local backend")
}

// --- focus run ---

func TestFocusRunCmd_CompletesAndSaves(t *testing.T) {
	app, st := testApp(t)
	math := seedSubject(t, st, "Math")
	notifier := &testutil.RecordingNotifier{}
	app.Notifier = notifier

	out, err := executeCmd(t, app, "focus", "run", "--mode", "short-break", "--subject", "Math", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, completedNotice)
	assert.Contains(t, out, "Session saved (5m)")
	assert.Equal(t, 1, notifier.Count())

	recs, err := st.sessions.ListBySubject(context.Background(), math.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 5, recs[0].DurationMinutes)
	assert.Equal(t, domain.ModeShortBreak, recs[0].Mode)
	assert.Equal(t, 90, recs[0].FocusScore)
}

func TestFocusRunCmd_RequiresSubject(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "focus", "run", "--mode", "short-break")
	require.Error(t, err)
	assert.True(t, domain.IsPrecondition(err))
	assert.Contains(t, err.Error(), "Please select a subject first!")
}

func TestFocusRunCmd_StopwatchNeedsNoSubject(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "focus", "run", "--stopwatch", "--for", "30ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Time limit reached.")
}

func TestFocusRunCmd_SaveTooShort(t *testing.T) {
	app, st := testApp(t)
	seedSubject(t, st, "Math")

	_, err := executeCmd(t, app, "focus", "run", "--subject", "Math", "--for", "20ms", "--save")
	assert.ErrorIs(t, err, domain.ErrTooShort)
}

func TestFocusRunCmd_UnknownMode(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "focus", "run", "--mode", "nap")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestFocusCmd_HeadlessWithoutTerminal(t *testing.T) {
	app, st := testApp(t)
	seedSubject(t, st, "Math")

	out, err := executeCmd(t, app, "focus", "--mode", "short-break", "--subject", "Math")
	require.NoError(t, err)
	assert.Contains(t, out, completedNotice)
	assert.NotContains(t, out, "Session saved")
}

// --- token and serve ---

func TestTokenCmd(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")

	app.Config.Server.JWTSecret = "s3cret"
	out, err := executeCmd(t, app, "token", "--subject", "u1", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := devserver.ValidateToken("s3cret", strings.TrimSpace(out), time.Now)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestServeCmd_NeedsLocalStores(t *testing.T) {
	app, _ := testApp(t)
	app.Serve = nil

	_, err := executeCmd(t, app, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local database")
}
