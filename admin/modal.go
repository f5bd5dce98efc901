package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Kind names the record a form modal edits.
type Kind string

const (
	KindProject    Kind = "project"
	KindTeamMember Kind = "team"
	KindReview     Kind = "review"
)

// State of a modal: closed -> loading -> populated -> (closed | submitting -> closed).
// A failed submit returns to populated with Error set.
type State string

const (
	StateClosed     State = "closed"
	StateLoading    State = "loading"
	StatePopulated  State = "populated"
	StateSubmitting State = "submitting"
)

// ModalTTL is how long an untouched modal survives.
const ModalTTL = 2 * time.Hour

// Values are the raw form fields, keyed by column name.
type Values map[string]string

// PendingImage is a cropped image waiting to be uploaded on submit.
type PendingImage struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Modal is the whole state of one open form. Closing it discards everything, including
// the pending image and staged image list.
type Modal struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	State     State         `json:"state"`
	EditingID *uuid.UUID    `json:"editing_id,omitempty"`
	Values    Values        `json:"values"`
	Images    ImageList     `json:"images"`
	Pending   *PendingImage `json:"pending,omitempty"`
	Error     string        `json:"error,omitempty"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// ModalView is what clients see: the modal without the pending image bytes.
type ModalView struct {
	ID           string     `json:"id"`
	Kind         Kind       `json:"kind"`
	State        State      `json:"state"`
	Mode         string     `json:"mode"`
	EditingID    *uuid.UUID `json:"editing_id,omitempty"`
	Values       Values     `json:"values"`
	Images       ImageList  `json:"images,omitempty"`
	PendingImage string     `json:"pending_image,omitempty"`
	PendingSize  int        `json:"pending_size,omitempty"`
	Error        string     `json:"error,omitempty"`
	SubmitLocked bool       `json:"submit_locked"`
}

func (m *Modal) View() ModalView {
	v := ModalView{
		ID:           m.ID,
		Kind:         m.Kind,
		State:        m.State,
		Mode:         "create",
		EditingID:    m.EditingID,
		Values:       m.Values,
		Images:       m.Images,
		Error:        m.Error,
		SubmitLocked: m.State != StatePopulated,
	}
	if m.EditingID != nil {
		v.Mode = "edit"
	}
	if m.Pending != nil {
		v.PendingImage = m.Pending.Name
		v.PendingSize = len(m.Pending.Data)
	}
	return v
}

func (m *Modal) clone() *Modal {
	c := *m
	c.Values = make(Values, len(m.Values))
	for k, v := range m.Values {
		c.Values[k] = v
	}
	c.Images = append(ImageList(nil), m.Images...)
	if m.Pending != nil {
		p := *m.Pending
		p.Data = append([]byte(nil), m.Pending.Data...)
		c.Pending = &p
	}
	if m.EditingID != nil {
		id := *m.EditingID
		c.EditingID = &id
	}
	return &c
}

// requireEditable rejects changes while a submit is running or before the form is loaded.
func requireEditable(m *Modal) error {
	switch m.State {
	case StatePopulated:
		return nil
	case StateSubmitting:
		return errs.NewSubmitInProgressError()
	}
	return errs.NewConflictError("modal is " + string(m.State))
}
