package pager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout is how long the loop waits for a click before freezing the message
const DefaultTimeout = time.Minute

const tracerName = "github.com/zinin/pagerbot/internal/pager"

// Handle identifies a sent message (or pending interaction) to a gateway
type Handle any

// Click is an inbound press of a control
type Click struct {
	UserID    string
	ControlID string
	Page      int    // page index the control was rendered for, 0 if unknown
	Handle    Handle // target for the next Update, nil to reuse the last one
}

// Gateway is the messaging platform boundary
type Gateway interface {
	// Send creates the message for the first render
	Send(ctx context.Context, r Render, ephemeral bool) (Handle, error)
	// Update replaces the render shown for h
	Update(ctx context.Context, h Handle, r Render) error
	// Wait blocks until a click on one of ids or the timeout.
	// ok is false when the timeout elapsed.
	Wait(ctx context.Context, ids []string, timeout time.Duration) (c Click, ok bool, err error)
}

// Dismisser is implemented by gateways that need ignored clicks
// acknowledged at the transport level
type Dismisser interface {
	Dismiss(ctx context.Context, c Click) error
}

// Options configures Paginate
type Options struct {
	OwnerID            string
	Ephemeral          bool
	AllowUsageByAnyone bool
	AdditionalControls []Control
	Timeout            time.Duration
	IDs                IDGenerator
	Logger             *slog.Logger
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Paginate shows pages through gw and handles navigation clicks until no
// click arrives within the timeout. The final render has navigation
// disabled. Gateway errors are returned as is, wrapped with the failed step.
// Cancelling ctx stops the loop after a best-effort frozen render.
func Paginate(ctx context.Context, gw Gateway, pages []Page, opts Options) error {
	session, err := NewSession(pages, SessionOptions{
		OwnerID:            opts.OwnerID,
		Ephemeral:          opts.Ephemeral,
		AdditionalControls: opts.AdditionalControls,
		IDs:                opts.IDs,
	})
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "pager.Paginate",
		trace.WithAttributes(
			attribute.Int("pager.pages", session.Total()),
			attribute.Bool("pager.ephemeral", session.Ephemeral()),
			attribute.Bool("pager.allow_anyone", opts.AllowUsageByAnyone),
		))
	defer span.End()

	err = run(ctx, gw, session, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func run(ctx context.Context, gw Gateway, s *Session, opts Options) error {
	log := opts.logger().With("owner", s.OwnerID(), "pages", s.Total())
	span := trace.SpanFromContext(ctx)
	ids := s.IDs()
	known := []string{ids.Back, ids.Forward}

	handle, err := gw.Send(ctx, s.Render(), s.Ephemeral())
	if err != nil {
		return fmt.Errorf("send initial page: %w", err)
	}
	log.Debug("Paginated message sent")

	for {
		click, ok, err := gw.Wait(ctx, known, opts.timeout())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				freeze(context.WithoutCancel(ctx), gw, s, handle, log)
				return ctxErr
			}
			return fmt.Errorf("wait for click: %w", err)
		}

		if !ok {
			s.Timeout()
			span.AddEvent("timeout", trace.WithAttributes(attribute.Int("pager.page", s.Current())))
			if err := gw.Update(ctx, handle, s.Render()); err != nil {
				return fmt.Errorf("update timed out page: %w", err)
			}
			log.Debug("Pagination timed out", "page", s.Current())
			return nil
		}

		if !authorized(s, opts, click) {
			log.Debug("Ignoring click from non-owner", "user", click.UserID)
			dismiss(ctx, gw, click, log)
			continue
		}
		if click.Page != 0 && click.Page != s.Current() {
			log.Debug("Ignoring stale click", "click_page", click.Page, "page", s.Current())
			dismiss(ctx, gw, click, log)
			continue
		}

		switch click.ControlID {
		case ids.Forward:
			s.Advance()
		case ids.Back:
			s.Retreat()
		}
		span.AddEvent("navigate", trace.WithAttributes(attribute.Int("pager.page", s.Current())))

		if click.Handle != nil {
			handle = click.Handle
		}
		if err := gw.Update(ctx, handle, s.Render()); err != nil {
			return fmt.Errorf("update page: %w", err)
		}
	}
}

// authorized reports whether the click may drive the session.
// Sessions without an owner accept everyone.
func authorized(s *Session, opts Options, c Click) bool {
	if opts.AllowUsageByAnyone || s.OwnerID() == "" {
		return true
	}
	return c.UserID == s.OwnerID()
}

func dismiss(ctx context.Context, gw Gateway, c Click, log *slog.Logger) {
	d, ok := gw.(Dismisser)
	if !ok {
		return
	}
	if err := d.Dismiss(ctx, c); err != nil {
		log.Warn("Failed to dismiss click", "error", err)
	}
}

func freeze(ctx context.Context, gw Gateway, s *Session, h Handle, log *slog.Logger) {
	s.Timeout()
	if err := gw.Update(ctx, h, s.Render()); err != nil {
		log.Warn("Failed to freeze cancelled pagination", "error", err)
	}
}
