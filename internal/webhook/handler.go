package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"callbridge/pkg/logger"
	"callbridge/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Vendor-facing response bodies. The vendor matches on these exact strings
// during endpoint validation, keep them stable.
const (
	respOK               = "OK"
	respLogged           = "Call logged successfully"
	respCustomerNotFound = "Customer lookup failed"
	respInternalError    = "Internal Server Error"
)

// Deduper tracks which event ids have already been processed so replayed
// deliveries can be skipped.
type Deduper interface {
	// MarkProcessed records the event id; false means it was seen before.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// Clear removes the marker so the vendor's retry of a failed delivery
	// is processed again.
	Clear(ctx context.Context, eventID string) error
}

// RedisDeduper implements Deduper on a shared Redis instance.
type RedisDeduper struct {
	Client *redis.Client
}

func (d RedisDeduper) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return utils.MarkEventProcessed(ctx, d.Client, eventID, ttl)
}

func (d RedisDeduper) Clear(ctx context.Context, eventID string) error {
	return utils.ClearEventProcessed(ctx, d.Client, eventID)
}

// Handler is the vendor-facing webhook endpoint.
//
// The endpoint is unauthenticated: the vendor calls it as an external
// service with no credentials. Non-POST requests are vendor validation
// pings and are acknowledged without side effects.
type Handler struct {
	Service *Service

	// Dedup enables event-id dedup when set. A nil Deduper or a dedup
	// backend outage degrades to non-idempotent processing, never to
	// request failure.
	Dedup    Deduper
	DedupTTL time.Duration
}

const defaultDedupTTL = 24 * time.Hour

// HandleCallEvent processes one call-completion delivery.
func (h Handler) HandleCallEvent(c *gin.Context) {
	log := logger.FromGin(c)

	if c.Request.Method != http.MethodPost {
		c.String(http.StatusOK, respOK)
		return
	}

	if h.Service == nil {
		log.Error("webhook service not configured")
		c.String(http.StatusInternalServerError, respInternalError)
		return
	}

	ctx := logger.With(c.Request.Context(), log)

	var p Payload
	if err := decodeBody(c.Request.Body, &p); err != nil {
		// The vendor contract has no 400 path; malformed bodies surface as a
		// server error, matching the documented response set.
		log.Error("webhook payload decode failed", "err", err)
		c.String(http.StatusInternalServerError, respInternalError)
		return
	}

	first := h.markProcessed(c, p.UUID)
	if !first {
		log.Info("duplicate delivery skipped", "event_id", p.UUID)
		h.Service.AuditDuplicate(ctx, p.UUID)
		c.String(http.StatusOK, respLogged)
		return
	}

	if _, err := h.Service.LogCall(ctx, p); err != nil {
		// Any non-2xx outcome drops the dedup marker: the vendor retries
		// those deliveries, and a marked-but-unlogged event would make the
		// retry report success for a call that was never logged.
		h.clearProcessed(c, p.UUID)
		if errors.Is(err, ErrCustomerNotFound) {
			c.String(http.StatusNotFound, respCustomerNotFound)
			return
		}
		log.Error("webhook processing failed", "event_id", p.UUID, "err", err)
		h.Service.AuditFailure(ctx, p.UUID, err.Error())
		c.String(http.StatusInternalServerError, respInternalError)
		return
	}

	c.String(http.StatusOK, respLogged)
}

func decodeBody(r io.Reader, p *Payload) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(p); err != nil {
		return err
	}
	return nil
}

// markProcessed returns false only when the event id was definitely seen
// before. Dedup failures are logged and treated as first delivery.
func (h Handler) markProcessed(c *gin.Context, eventID string) bool {
	if h.Dedup == nil || eventID == "" {
		return true
	}
	ttl := h.DedupTTL
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	first, err := h.Dedup.MarkProcessed(c.Request.Context(), eventID, ttl)
	if err != nil {
		logger.FromGin(c).Warn("event dedup unavailable", "event_id", eventID, "err", err)
		return true
	}
	return first
}

func (h Handler) clearProcessed(c *gin.Context, eventID string) {
	if h.Dedup == nil || eventID == "" {
		return
	}
	if err := h.Dedup.Clear(c.Request.Context(), eventID); err != nil {
		logger.FromGin(c).Warn("event dedup clear failed", "event_id", eventID, "err", err)
	}
}
