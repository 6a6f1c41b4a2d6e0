package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"totem/internal/session"
	"totem/pkg/logger"
)

// Generator produces ticket batches. Codes are requested one at a time, in
// order, so ticket[i] always corresponds to issuing call i (the carousel
// relies on that mapping). On any unit failure the partial batch is discarded
// and a full placeholder batch is synthesized instead; the visitor flow is
// never blocked by an upstream outage.
type Generator struct {
	issuer      Issuer
	checkInBase string
	log         *logger.Logger
	now         func() time.Time
}

// NewGenerator creates a ticket generator.
func NewGenerator(issuer Issuer, checkInBase string, log *logger.Logger) *Generator {
	return &Generator{
		issuer:      issuer,
		checkInBase: checkInBase,
		log:         log,
		now:         time.Now,
	}
}

// Generate requests quantity codes sequentially and builds one QR URL per
// code. The returned batch always has exactly quantity tickets.
func (g *Generator) Generate(ctx context.Context, museumCode string, quantity int, museumID string) *Batch {
	generated := make([]session.Ticket, 0, quantity)

	for i := 0; i < quantity; i++ {
		code, err := g.issuer.IssueCode(ctx, museumCode)
		if err != nil {
			if g.log != nil {
				g.log.LogBatchFallback(ctx, museumCode, quantity, err)
			}
			return g.placeholderBatch(quantity, museumID)
		}

		generated = append(generated, session.Ticket{
			Code:  code,
			QRUrl: g.qrURL(code, museumID),
		})
	}

	return &Batch{ID: uuid.New(), Tickets: generated}
}

// qrURL builds the QR payload. The path and query must stay bit-exact for
// the check-in scanners: check-in?code=<code>&museumId=<id>.
func (g *Generator) qrURL(code, museumID string) string {
	return g.checkInBase + "check-in?code=" + code + "&museumId=" + museumID
}

// placeholderBatch synthesizes quantity local tickets. Codes are stamped
// with their position and the current time; they are never sent upstream.
func (g *Generator) placeholderBatch(quantity int, museumID string) *Batch {
	stamp := g.now().UnixMilli()
	placeholders := make([]session.Ticket, 0, quantity)

	for i := 0; i < quantity; i++ {
		code := fmt.Sprintf("%s_%d_%d", PlaceholderPrefix, i+1, stamp)
		placeholders = append(placeholders, session.Ticket{
			Code:  code,
			QRUrl: g.qrURL(code, museumID),
		})
	}

	return &Batch{ID: uuid.New(), Tickets: placeholders, Fallback: true}
}
