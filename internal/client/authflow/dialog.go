package authflow

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/tpforum/internal/client/client"
	"github.com/dmitrijs2005/tpforum/internal/client/models"
	"github.com/dmitrijs2005/tpforum/internal/client/session"
	"github.com/dmitrijs2005/tpforum/internal/logging"
)

var (
	ErrClosed = errors.New("auth dialog is closed")
	ErrBusy   = errors.New("submission in progress")
	// ErrStale is returned by Submit when the dialog was closed or reopened
	// while the request was in flight. The response has been discarded.
	ErrStale = errors.New("response discarded")
)

// SuccessFunc is invoked once per successful submission.
type SuccessFunc func(user models.User, token string)

// Form holds the field values of the dialog.
type Form struct {
	Username string
	Email    string
	Password string
}

func (f Form) credentials() models.Credentials {
	return models.Credentials{Username: f.Username, Email: f.Email, Password: f.Password}
}

type Dialog struct {
	auth     client.Authenticator
	store    session.Store
	notifier Notifier
	log      logging.Logger

	mu         sync.Mutex
	open       bool
	mode       models.Mode
	form       Form
	submitting bool
	generation uint64
	onSuccess  SuccessFunc
}

func NewDialog(auth client.Authenticator, store session.Store, notifier Notifier, log logging.Logger) *Dialog {
	if log == nil {
		log = logging.Nop{}
	}
	return &Dialog{
		auth:     auth,
		store:    store,
		notifier: notifier,
		log:      log,
		mode:     models.ModeLogin,
	}
}

// Open shows the dialog in mode. Reopening an open dialog starts a new
// generation; any request still in flight will be ignored.
func (d *Dialog) Open(mode models.Mode, onSuccess SuccessFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	d.open = true
	d.mode = mode
	d.submitting = false
	d.onSuccess = onSuccess
}

// Close hides the dialog and abandons any request in flight. Field values
// survive a close.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return
	}
	d.generation++
	d.open = false
	d.submitting = false
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Dialog) Mode() models.Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Dialog) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}

// Form returns a copy of the current field values.
func (d *Dialog) Form() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// SetMode switches between login and register. Fields are kept.
func (d *Dialog) SetMode(mode models.Mode) error {
	return d.update(func() { d.mode = mode })
}

func (d *Dialog) ToggleMode() error {
	return d.update(func() { d.mode = d.mode.Toggle() })
}

func (d *Dialog) SetUsername(v string) error {
	return d.update(func() { d.form.Username = v })
}

func (d *Dialog) SetEmail(v string) error {
	return d.update(func() { d.form.Email = v })
}

func (d *Dialog) SetPassword(v string) error {
	return d.update(func() { d.form.Password = v })
}

func (d *Dialog) update(fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.submitting {
		return ErrBusy
	}
	fn()
	return nil
}

// Submit sends the form to the auth endpoint. Validation failures are
// reported without any network traffic. The submitting flag is reset on
// every return path.
func (d *Dialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.submitting {
		d.mu.Unlock()
		return ErrBusy
	}

	mode := d.mode
	creds := d.form.credentials()
	if err := creds.Validate(mode); err != nil {
		d.mu.Unlock()
		d.notify(Notification{Title: titleError, Description: err.Error(), Destructive: true})
		return err
	}

	gen := d.generation
	d.submitting = true
	d.mu.Unlock()

	defer d.finish(gen)

	log := d.log.With("action", string(mode))
	log.Debug(ctx, "auth request")

	resp, err := d.auth.Authenticate(ctx, creds.Request(mode))
	if err != nil {
		return d.fail(ctx, log, gen, err)
	}
	return d.succeed(ctx, log, gen, resp)
}

func (d *Dialog) finish(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generation == gen {
		d.submitting = false
	}
}

func (d *Dialog) fail(ctx context.Context, log logging.Logger, gen uint64, err error) error {
	d.mu.Lock()
	stale := d.generation != gen
	d.mu.Unlock()

	if stale {
		log.Debug(ctx, "discarding stale auth failure", "error", err)
		return errors.Join(ErrStale, err)
	}

	log.Warn(ctx, "auth request failed", "error", err)
	d.notify(Notification{Title: titleError, Description: describe(err), Destructive: true})
	return err
}

func (d *Dialog) succeed(ctx context.Context, log logging.Logger, gen uint64, resp *models.AuthResponse) error {
	sess := resp.Session()

	d.mu.Lock()
	if d.generation != gen {
		d.mu.Unlock()
		log.Debug(ctx, "discarding stale auth response")
		return ErrStale
	}

	if err := d.store.Save(ctx, sess); err != nil {
		d.mu.Unlock()
		log.Error(ctx, "failed to persist session", "error", err)
		d.notify(Notification{Title: titleError, Description: msgStorage, Destructive: true})
		return err
	}

	onSuccess := d.onSuccess
	d.open = false
	d.submitting = false
	d.generation++
	d.form = Form{}
	d.onSuccess = nil
	d.mu.Unlock()

	log.Info(ctx, "signed in", "user_id", sess.User.ID)
	d.notify(Notification{Title: titleSuccess, Description: resp.Message})
	if onSuccess != nil {
		onSuccess(sess.User, sess.Token)
	}
	return nil
}

func (d *Dialog) notify(n Notification) {
	if d.notifier != nil {
		d.notifier.Notify(n)
	}
}

// describe turns a transport error into the text shown to the user.
func describe(err error) string {
	var se *client.ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return msgSomethingWrong
	}
	return msgUnreachable
}
