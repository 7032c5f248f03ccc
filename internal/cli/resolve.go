package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

var errUnknownSubject = errors.New("unknown subject")

// resolveSubject finds a subject by id, id prefix or case-insensitive name.
func resolveSubject(ctx context.Context, app *App, ref string) (domain.Subject, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Subject{}, nil
	}
	if app.Backend.Subjects == nil {
		return domain.Subject{}, fmt.Errorf("subject %q: no subject directory configured", ref)
	}
	subjects, err := app.Backend.Subjects.ListSubjects(ctx)
	if err != nil {
		return domain.Subject{}, fmt.Errorf("listing subjects: %w", err)
	}

	var prefixed []domain.Subject
	for _, s := range subjects {
		if s.ID == ref || strings.EqualFold(s.Name, ref) {
			return s, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			prefixed = append(prefixed, s)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	if len(prefixed) > 1 {
		return domain.Subject{}, fmt.Errorf("subject %q is ambiguous (%d matches)", ref, len(prefixed))
	}
	return domain.Subject{}, fmt.Errorf("%w %q", errUnknownSubject, ref)
}

// subjectNames maps subject ids to names. A failed lookup yields an empty
// map; callers fall back to showing ids.
func subjectNames(ctx context.Context, app *App) (map[string]string, []domain.Subject) {
	names := map[string]string{}
	if app.Backend.Subjects == nil {
		return names, nil
	}
	subjects, err := app.Backend.Subjects.ListSubjects(ctx)
	if err != nil {
		app.logger().Warn("listing subjects failed", "error", err)
		return names, nil
	}
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	return names, subjects
}
