package handlers

import (
	"net/http"

	"folio/internal/notify"
	"folio/internal/views/components"
)

type notificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}

// Notifications returns the visitor's active notifications, as the toast
// container partial or as JSON.
func Notifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	state, release := visitorState(r)
	defer release()
	writeNotifications(w, r, state.Queue.Active())
}

// DismissNotification removes one notification. Unknown ids are ignored.
func DismissNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	state, release := visitorState(r)
	defer release()
	state.Queue.Dismiss(r.PathValue("id"))

	if !isHTMX(r) && !wantsJSON(r) {
		redirectBack(w, r, "/")
		return
	}
	writeNotifications(w, r, state.Queue.Active())
}

func writeNotifications(w http.ResponseWriter, r *http.Request, items []notify.Notification) {
	if !isHTMX(r) && wantsJSON(r) {
		if items == nil {
			items = []notify.Notification{}
		}
		writeJSON(w, r, http.StatusOK, notificationsResponse{Notifications: items})
		return
	}
	renderComponent(w, r, components.Toasts(items))
}
