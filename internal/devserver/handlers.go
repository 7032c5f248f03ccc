package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

const defaultHistoryDays = 30

type createSubjectRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createFlashcardRequest struct {
	SubjectID string `json:"subjectId"`
	Front     string `json:"front" validate:"required"`
	Back      string `json:"back" validate:"required"`
}

type reviewRequest struct {
	Quality int `json:"quality" validate:"required,min=1,max=5"`
}

// decode reads a JSON body into dst and runs struct validation. It writes
// the 400 response itself and reports whether the handler should go on.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Validation error"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return "Validation error: " + strings.Join(parts, ", ")
}

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.deps.Subjects.ListSubjects(r.Context())
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	if subjects == nil {
		subjects = []domain.Subject{}
	}
	respondData(w, http.StatusOK, subjects)
}

func (s *Server) createSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if !s.decode(w, r, &req) {
		return
	}
	subj := &domain.Subject{Name: req.Name}
	if err := s.deps.Subjects.CreateSubject(r.Context(), subj); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, subj)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	days := defaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondMessage(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	recs, err := s.deps.Sessions.ListRecent(r.Context(), days)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*domain.SessionRecord{}
	}
	respondData(w, http.StatusOK, recs)
}

func (s *Server) submitSession(w http.ResponseWriter, r *http.Request) {
	var rec domain.SessionRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := rec.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	rec.CreatedAt = s.now().UTC().Truncate(time.Second)
	if err := s.deps.Sessions.SubmitSession(r.Context(), &rec); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, rec)
}

func (s *Server) fetchDue(w http.ResponseWriter, r *http.Request) {
	cards, err := s.deps.Flashcards.FetchDue(r.Context())
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cards)
}

func (s *Server) createFlashcard(w http.ResponseWriter, r *http.Request) {
	var req createFlashcardRequest
	if !s.decode(w, r, &req) {
		return
	}
	card := &domain.Flashcard{Front: req.Front, Back: req.Back, SubjectID: req.SubjectID}
	if err := s.deps.Flashcards.CreateFlashcard(r.Context(), card); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, card)
}

func (s *Server) submitReview(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid flashcard id")
		return
	}
	var req reviewRequest
	if !s.decode(w, r, &req) {
		return
	}
	review := domain.ReviewSubmission{CardID: id, Quality: domain.Quality(req.Quality)}
	if err := s.deps.Flashcards.SubmitReview(r.Context(), review); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"_id": id, "quality": req.Quality})
}
