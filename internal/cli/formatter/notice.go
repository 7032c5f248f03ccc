package formatter

import (
	"errors"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

// GenericFailure is shown when a store failed without a message of its own.
const GenericFailure = "Something went wrong. Try again."

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

var userFacing = []error{
	domain.ErrTooShort,
	domain.ErrMissingSubject,
	domain.ErrEmptyQueue,
	domain.ErrInvalidQuality,
	domain.ErrUnknownMode,
}

// Notice turns an operation error into the short text shown inline.
// Store failures show the backend's message when it sent one.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return capitalize(target.Error())
		}
	}
	var pe *domain.PreconditionError
	if errors.As(err, &pe) {
		return capitalize(pe.Reason)
	}
	var se *domain.StoreError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return GenericFailure
}

func RenderNotice(kind NoticeKind, text string) string {
	if text == "" {
		return ""
	}
	switch kind {
	case NoticeSuccess:
		return StyleGreen.Render("✔ " + text)
	case NoticeError:
		return StyleRed.Render("✖ " + text)
	default:
		return StyleBlue.Render("• " + text)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
