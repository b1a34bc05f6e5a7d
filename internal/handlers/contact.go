package handlers

import (
	"errors"
	"net/http"
	"time"

	"folio/internal/contact"
	applog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/views/pages"
)

// notificationsEvent tells the toast container to refresh.
const notificationsEvent = "notifications-updated"

// Contact validates and delivers a contact form submission. Invalid input is
// re-rendered with inline errors and a 422 status; delivery outcomes are
// reported through the visitor's notifications.
func Contact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse contact form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	payload := contact.Payload{
		Name:     r.PostFormValue(contact.FieldName),
		Email:    r.PostFormValue(contact.FieldEmail),
		Subject:  r.PostFormValue(contact.FieldSubject),
		Message:  r.PostFormValue(contact.FieldMessage),
		Company:  r.PostFormValue(contact.FieldCompany),
		Budget:   r.PostFormValue(contact.FieldBudget),
		Timeline: r.PostFormValue(contact.FieldTimeline),
	}

	state, release := visitorState(r)
	defer release()

	started := time.Now()
	outcome, err := state.Flow.Submit(r.Context(), payload)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		recorder.ContactSubmission(metrics.OutcomeInvalid, 0)
		applog.Debug(r.Context(), "contact form rejected", "fields", len(outcome.Errors))
		renderContactForm(w, r, http.StatusUnprocessableEntity, pages.NewContactFormData(outcome.Form, outcome.Errors))
		return
	case errors.Is(err, contact.ErrBusy):
		recorder.ContactSubmission(metrics.OutcomeBusy, 0)
		renderContactForm(w, r, http.StatusConflict, pages.NewContactFormData(outcome.Form, nil))
		return
	case err != nil:
		applog.Error(r.Context(), "contact submission failed", "error", err)
		http.Error(w, "unable to process submission", http.StatusInternalServerError)
		return
	}

	if r.Context().Err() != nil {
		recorder.ContactSubmission(metrics.OutcomeAbandoned, 0)
		return
	}

	result := metrics.OutcomeDelivered
	if !outcome.Delivered {
		result = metrics.OutcomeFailed
	}
	recorder.ContactSubmission(result, time.Since(started))

	if !isHTMX(r) {
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}
	w.Header().Set("HX-Trigger", notificationsEvent)
	renderComponent(w, r, pages.ContactForm(pages.NewContactFormData(outcome.Form, nil)))
}

func renderContactForm(w http.ResponseWriter, r *http.Request, status int, form pages.ContactFormData) {
	if isHTMX(r) {
		renderComponentStatus(w, r, status, pages.ContactForm(form))
		return
	}

	state, release := visitorState(r)
	defer release()
	machine, _ := requestTheme(r, state)
	defer machine.Close()
	renderHome(w, r, status, state, machine, catalogView(""), form)
}
