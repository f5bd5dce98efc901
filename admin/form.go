package admin

import (
	"context"
	"errors"
	"image"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/imaging"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

// SubmitResult is returned after a successful submit, when the modal has closed.
type SubmitResult struct {
	Action   string    `json:"action"`
	Record   any       `json:"record"`
	Progress []int     `json:"progress,omitempty"`
	Table    TableView `json:"table"`
	Message  string    `json:"message"`
}

// Forms drives the project, team and review modals.
type Forms struct {
	store    ModalStore
	uploader *storage.Uploader
	tables   *Tables
	bindings map[Kind]binding
	logger   zerolog.Logger
}

func NewForms(stores Stores, store ModalStore, uploader *storage.Uploader, tables *Tables) *Forms {
	return &Forms{
		store:    store,
		uploader: uploader,
		tables:   tables,
		bindings: map[Kind]binding{
			KindProject:    projectBinding{stores.Projects},
			KindTeamMember: teamBinding{stores.TeamMembers},
			KindReview:     reviewBinding{stores.Reviews},
		},
		logger: log.With().Str("component", "forms").Logger(),
	}
}

func (f *Forms) binding(kind Kind) (binding, error) {
	b, ok := f.bindings[kind]
	if !ok {
		return nil, errs.NewInvalidFieldError("kind", "unknown form "+string(kind))
	}
	return b, nil
}

// Open creates a modal. With an id the record is loaded into the form; without one the
// form starts from empty defaults. A failed load closes the modal again.
func (f *Forms) Open(ctx context.Context, kind Kind, id *uuid.UUID) (*Modal, error) {
	b, err := f.binding(kind)
	if err != nil {
		return nil, err
	}

	m := &Modal{
		ID:        uuid.NewString(),
		Kind:      kind,
		State:     StateLoading,
		EditingID: id,
		Values:    Values{},
	}
	if err := f.store.Create(ctx, m); err != nil {
		return nil, err
	}

	values, images := b.empty(), ImageList{}
	if id != nil {
		values, images, err = b.load(ctx, *id)
		if err != nil {
			f.discard(ctx, m.ID)
			return nil, errs.NewDatabaseError("load", string(kind), err)
		}
	}

	return f.store.Update(ctx, m.ID, func(m *Modal) error {
		m.Values = values
		m.Images = images
		m.State = StatePopulated
		return nil
	})
}

func (f *Forms) Get(ctx context.Context, id string) (*Modal, error) {
	return f.store.Get(ctx, id)
}

// Close discards the modal and everything staged on it.
func (f *Forms) Close(ctx context.Context, id string) error {
	return f.store.Delete(ctx, id)
}

// Edit copies known fields from input into the modal without submitting.
func (f *Forms) Edit(ctx context.Context, id string, input Values) (*Modal, error) {
	return f.mutate(ctx, id, func(m *Modal, b binding) error {
		mergeValues(m.Values, input, b.fields())
		return nil
	})
}

// StageCrop validates an image, crops it to the square output and keeps it on the modal
// until submit. box may be nil for the default crop area.
func (f *Forms) StageCrop(ctx context.Context, id string, declaredType string, data []byte, box *image.Rectangle) (*Modal, error) {
	if err := imaging.ValidateImage(declaredType, int64(len(data)), data); err != nil {
		return nil, err
	}
	cropped, err := imaging.CropJPEG(data, box)
	if err != nil {
		return nil, err
	}
	return f.mutate(ctx, id, func(m *Modal, b binding) error {
		if b.imageMode() == noImages {
			return errs.BadRequest(string(m.Kind) + " records have no images")
		}
		m.Pending = &PendingImage{Name: cropped.Name, ContentType: cropped.ContentType, Data: cropped.Data}
		return nil
	})
}

// CancelCrop drops the pending image. Stored state is untouched.
func (f *Forms) CancelCrop(ctx context.Context, id string) (*Modal, error) {
	return f.mutate(ctx, id, func(m *Modal, _ binding) error {
		m.Pending = nil
		return nil
	})
}

func (f *Forms) AddImage(ctx context.Context, id string, url string) (*Modal, error) {
	return f.mutateGallery(ctx, id, func(l ImageList) (ImageList, error) {
		return l.Add(url), nil
	})
}

func (f *Forms) MoveImage(ctx context.Context, id string, from, to int) (*Modal, error) {
	return f.mutateGallery(ctx, id, func(l ImageList) (ImageList, error) {
		out, err := l.Move(from, to)
		if err != nil {
			return nil, errs.NewInvalidFieldError("index", err.Error())
		}
		return out, nil
	})
}

// RemoveImage drops an image from the staged list. The stored object is kept.
func (f *Forms) RemoveImage(ctx context.Context, id string, index int) (*Modal, error) {
	return f.mutateGallery(ctx, id, func(l ImageList) (ImageList, error) {
		out, err := l.Remove(index)
		if err != nil {
			return nil, errs.NewInvalidFieldError("index", err.Error())
		}
		return out, nil
	})
}

func (f *Forms) mutateGallery(ctx context.Context, id string, fn func(ImageList) (ImageList, error)) (*Modal, error) {
	return f.mutate(ctx, id, func(m *Modal, b binding) error {
		if b.imageMode() != imageGallery {
			return errs.BadRequest(string(m.Kind) + " records have a single image")
		}
		out, err := fn(m.Images)
		if err != nil {
			return err
		}
		m.Images = out
		return nil
	})
}

func (f *Forms) mutate(ctx context.Context, id string, fn func(*Modal, binding) error) (*Modal, error) {
	return f.store.Update(ctx, id, func(m *Modal) error {
		if err := requireEditable(m); err != nil {
			return err
		}
		b, err := f.binding(m.Kind)
		if err != nil {
			return err
		}
		m.Error = ""
		return fn(m, b)
	})
}

// Submit validates the form, uploads a pending image, then inserts or updates the record.
// The modal is locked in the submitting state for the duration; a second submit is
// rejected. Every failure returns the modal to populated with the error attached.
func (f *Forms) Submit(ctx context.Context, id string, input Values) (*SubmitResult, error) {
	var b binding
	m, err := f.store.Update(ctx, id, func(m *Modal) error {
		if err := requireEditable(m); err != nil {
			return err
		}
		var err error
		if b, err = f.binding(m.Kind); err != nil {
			return err
		}
		mergeValues(m.Values, input, b.fields())
		if err := b.validate(m.Values, m.Images); err != nil {
			return err
		}
		m.State = StateSubmitting
		m.Error = ""
		return nil
	})
	if err != nil {
		f.recordError(ctx, id, input, err)
		return nil, err
	}

	done := false
	defer func() {
		if !done {
			f.release(ctx, id, err)
		}
	}()

	var progress []int
	values, images := m.Values, m.Images
	if b.imageMode() == imageGallery {
		images = images.Add(values[pastedImageField])
	}
	if m.Pending != nil {
		var url string
		url, err = f.uploader.Upload(ctx, storage.File{
			Name:        m.Pending.Name,
			ContentType: m.Pending.ContentType,
			Data:        m.Pending.Data,
		}, b.folder(), func(p int) { progress = append(progress, p) })
		if err != nil {
			return nil, err
		}
		switch b.imageMode() {
		case imageGallery:
			images = images.Add(url)
		case singleImage:
			values["image_url"] = url
		}
	}

	action := "update"
	if m.EditingID == nil {
		action = "insert"
	}
	var record any
	record, err = b.save(ctx, m.EditingID, values, images)
	if err != nil {
		if _, ok := asApiErr(err); !ok {
			err = errs.NewDatabaseError(action, string(m.Kind), err)
		}
		return nil, err
	}

	done = true
	if derr := f.store.Delete(ctx, id); derr != nil {
		f.logger.Warn().Err(derr).Str("modal", id).Msg("could not close modal after submit")
	}

	table, lerr := f.tables.Load(ctx, b.entity(), nil)
	if lerr != nil {
		f.logger.Error().Err(lerr).Str("entity", string(b.entity())).Msg("could not reload table after submit")
	}
	return &SubmitResult{
		Action:   action,
		Record:   record,
		Progress: progress,
		Table:    table,
		Message:  savedMessage(m.Kind, action),
	}, nil
}

// release puts a modal that failed mid-submit back into the populated state.
func (f *Forms) release(ctx context.Context, id string, cause error) {
	msg := "submission failed"
	if cause != nil {
		msg = visibleMessage(cause)
	}
	_, err := f.store.Update(context.WithoutCancel(ctx), id, func(m *Modal) error {
		m.State = StatePopulated
		m.Error = msg
		return nil
	})
	if err != nil {
		f.logger.Error().Err(err).Str("modal", id).Msg("could not release modal after failed submit")
	}
}

// recordError keeps the typed values and attaches a validation error to a populated modal
// so a reload shows both.
func (f *Forms) recordError(ctx context.Context, id string, input Values, cause error) {
	apiErr, ok := asApiErr(cause)
	if !ok || apiErr.StatusCode != http.StatusBadRequest {
		return
	}
	_, _ = f.store.Update(context.WithoutCancel(ctx), id, func(m *Modal) error {
		if m.State != StatePopulated {
			return errs.NewConflictError("modal is " + string(m.State))
		}
		if b, err := f.binding(m.Kind); err == nil {
			mergeValues(m.Values, input, b.fields())
		}
		m.Error = visibleMessage(cause)
		return nil
	})
}

func (f *Forms) discard(ctx context.Context, id string) {
	if err := f.store.Delete(context.WithoutCancel(ctx), id); err != nil {
		f.logger.Warn().Err(err).Str("modal", id).Msg("could not discard modal")
	}
}

func mergeValues(dst, src Values, fields []string) {
	for _, field := range fields {
		if v, ok := src[field]; ok {
			dst[field] = v
		}
	}
}

func asApiErr(err error) (*errs.ApiErr, bool) {
	var apiErr *errs.ApiErr
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func visibleMessage(err error) string {
	if apiErr, ok := asApiErr(err); ok {
		return apiErr.Error()
	}
	return err.Error()
}

func savedMessage(kind Kind, action string) string {
	noun := map[Kind]string{KindProject: "Project", KindTeamMember: "Team member", KindReview: "Review"}[kind]
	if action == "insert" {
		return noun + " added successfully!"
	}
	return noun + " updated successfully!"
}
