package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/bluebite-kiosk/internal/domain/session"
)

// CreateSession opens a session and starts loading its menu in the
// background. The response is the session view in the loading state.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Create()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.sessionCreated(r.Context())
	zctx.From(r.Context()).Info("Session created", zap.String("session_id", s.ID()))

	st := s.State()
	h.startLoad(r.Context(), s)

	writeView(w, http.StatusCreated, s.ID(), st)
}

// GetSession returns the session view.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeView(w, http.StatusOK, s.ID(), s.State())
}

// DeleteSession closes the session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "sessionID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reload refetches the menu in the background.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.startLoad(r.Context(), s)
	writeView(w, http.StatusAccepted, s.ID(), s.State())
}

// SelectCategory switches the category filter. Body: {"category": "..."}.
func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	category, err := readStringField(r, "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.SelectCategory(category); err != nil {
		h.fail(w, r, err)
		return
	}
	writeView(w, http.StatusOK, s.ID(), s.State())
}

// AddItem adds one unit of a menu item. Body: {"menu_item_id": "..."}.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, err := readStringField(r, "menu_item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Add(id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeView(w, http.StatusOK, s.ID(), s.State())
}

// Increment adds one unit to a cart line.
func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, (*session.Session).Increment)
}

// Decrement removes one unit from a cart line.
func (h *Handler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, (*session.Session).Decrement)
}

func (h *Handler) lineAction(w http.ResponseWriter, r *http.Request, do func(*session.Session, string) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := do(s, itemIDParam(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	writeView(w, http.StatusOK, s.ID(), s.State())
}

// Checkout submits the cart. The response is always the session view
// carrying the outcome message: 200 on success or for an empty cart, 502
// when the order service refused or could not be reached. A checkout that is
// already in flight yields 409.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.cfg.CheckoutTimeout)
	defer cancel()

	conf, err := s.Checkout(ctx)
	switch {
	case err == nil && conf == nil:
		h.metrics.checkout(r.Context(), resultEmpty)
		writeView(w, http.StatusOK, s.ID(), s.State())
	case err == nil:
		h.metrics.checkout(r.Context(), resultPlaced)
		writeView(w, http.StatusOK, s.ID(), s.State())
	case isDomainError(err):
		if errors.Is(err, session.ErrCheckoutInProgress) {
			h.metrics.checkout(r.Context(), resultBusy)
		}
		h.fail(w, r, err)
	default:
		h.metrics.checkout(r.Context(), resultFailed)
		writeView(w, http.StatusBadGateway, s.ID(), s.State())
	}
}

// session resolves the {sessionID} path parameter, writing a 404 when it is
// unknown.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return s, true
}

// startLoad runs the menu load of s in the background, detached from the
// request but bound to the handler's lifetime.
func (h *Handler) startLoad(reqCtx context.Context, s *session.Session) {
	lg := zctx.From(reqCtx).With(zap.String("session_id", s.ID()))
	go func() {
		ctx, cancel := context.WithTimeout(zctx.Base(h.ctx, lg), h.cfg.LoadTimeout)
		defer cancel()

		if err := s.Load(ctx); err != nil {
			lg.Debug("Background menu load ended with error", zap.Error(err))
		}
	}()
}

// itemIDParam returns the unescaped {itemID} path parameter. Items without a
// backend id are keyed by name, which may contain reserved characters.
func itemIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "itemID")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
