package history_service

import (
	"fmt"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

const (
	MinRating = 1
	MaxRating = 5
)

func findRecord(records []domain.ConsultationRecord, ref domain.RecordRef) int {
	for i, record := range records {
		if ref.Matches(record) {
			return i
		}
	}
	return -1
}

// OpenFeedbackDraft seeds the dialog from the existing feedback, or 0 and "".
func OpenFeedbackDraft(records []domain.ConsultationRecord, ref domain.RecordRef) (*domain.FeedbackDraft, error) {
	index := findRecord(records, ref)
	if index < 0 {
		return nil, domain.ErrRecordNotFound
	}

	record := records[index]
	if !record.Status.AcceptsFeedback() {
		return nil, feedbackNotAllowed(record)
	}

	return &domain.FeedbackDraft{
		Record:  domain.RefOf(record),
		Rating:  record.Rating(),
		Comment: record.Feedback.CommentText(),
	}, nil
}

// ReconcileFeedback returns a new list where the target record carries the draft's
// feedback. Only the feedback field changes; the input list is left untouched.
func ReconcileFeedback(records []domain.ConsultationRecord, draft domain.FeedbackDraft) ([]domain.ConsultationRecord, domain.ConsultationRecord, error) {
	if err := validateRating(draft.Rating); err != nil {
		return nil, domain.ConsultationRecord{}, err
	}

	index := findRecord(records, draft.Record)
	if index < 0 {
		return nil, domain.ConsultationRecord{}, domain.ErrRecordNotFound
	}
	if !records[index].Status.AcceptsFeedback() {
		return nil, domain.ConsultationRecord{}, feedbackNotAllowed(records[index])
	}

	var comment *string
	if draft.Comment != "" {
		text := draft.Comment
		comment = &text
	}

	updated := make([]domain.ConsultationRecord, len(records))
	copy(updated, records)
	updated[index].Feedback = &domain.Feedback{Rating: draft.Rating, Comment: comment}

	return updated, updated[index], nil
}

func validateRating(rating int) error {
	if rating == 0 {
		return domain.NewValidationError("Avaliação obrigatória", map[string]string{
			"rating": "Por favor, selecione pelo menos uma estrela.",
		})
	}
	if rating < MinRating || rating > MaxRating {
		return domain.NewValidationError("Avaliação inválida", map[string]string{
			"rating": fmt.Sprintf("A avaliação deve ficar entre %d e %d estrelas.", MinRating, MaxRating),
		})
	}
	return nil
}

func feedbackNotAllowed(record domain.ConsultationRecord) error {
	return &domain.ValidationError{
		Message: "Avaliação indisponível",
		Fields: map[string]string{
			"status": fmt.Sprintf("Somente consultas realizadas podem ser avaliadas (status atual: %s).", record.Status),
		},
		Cause: domain.ErrFeedbackNotAllowed,
	}
}
