// Package bot runs the answer pipeline for one inbound message: intent
// gate, record matching, fact assembly and answer generation. It always
// produces a reply; failures degrade to fixed Mongolian responses.
package bot

import (
	"context"
	"errors"
	"time"

	"github.com/wayacademy/manychat-bot-go/internal/cache"
	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/facts"
	"github.com/wayacademy/manychat-bot-go/internal/intent"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
	"github.com/wayacademy/manychat-bot-go/internal/match"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
	"github.com/wayacademy/manychat-bot-go/internal/record"
	"github.com/wayacademy/manychat-bot-go/internal/sentry"
)

// Fixed degradation replies.
const (
	ReplyBusy     = "Уучлаарай, систем ачаалалтай байна. Түр хүлээгээд дахин оролдоно уу."
	ReplyGenError = "Уучлаарай, хариулт үүсгэхэд алдаа гарлаа. Дахин оролдоно уу."
)

// Generator is the answer backend consumed by the pipeline.
type Generator interface {
	Generate(ctx context.Context, question, factContext string) (string, error)
}

// Bot wires the pipeline dependencies.
type Bot struct {
	store     *cache.Store
	generator Generator
	log       *logger.Logger
	metrics   *metrics.Metrics
	budget    time.Duration
}

// New creates the pipeline. budget caps end-to-end processing of one
// message; 0 uses the default.
func New(store *cache.Store, generator Generator, log *logger.Logger, m *metrics.Metrics, budget time.Duration) *Bot {
	if budget <= 0 {
		budget = config.RequestProcessing
	}
	return &Bot{
		store:     store,
		generator: generator,
		log:       log.WithModule("bot"),
		metrics:   m,
		budget:    budget,
	}
}

// Respond produces the reply for one inbound message. It never returns
// an empty string: gate replies, generated answers and fixed error
// replies cover every path.
func (b *Bot) Respond(ctx context.Context, subscriberID, message string) string {
	ctx, cancel := context.WithTimeout(ctx, b.budget)
	defer cancel()

	log := b.log.WithField("subscriber_id", subscriberID)

	// Gate rules that need no dataset access run before any cache read
	if d, ok := intent.PreScreen(message); ok {
		b.recordDecision(d)
		return d.Reply
	}

	courses, err := b.store.Get(ctx, cache.DatasetCourses)
	if err != nil {
		log.WithError(err).Error("failed to read courses dataset")
	}
	faqs, err := b.store.Get(ctx, cache.DatasetFAQs)
	if err != nil {
		log.WithError(err).Error("failed to read faq dataset")
	}

	d := intent.Evaluate(message, match.CourseHints(courses))
	if d.Urgent {
		log.WithField("message", facts.Truncate(message, 80)).Warn("urgent message flagged")
	}
	if d.Kind != intent.KindProceed {
		b.recordDecision(d)
		return d.Reply
	}

	payload := b.assemble(message, courses, faqs)
	b.recordIntent(payload.Intent, d)

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < time.Second {
		return ReplyBusy
	}

	answer, err := b.generate(ctx, message, payload.Render(d.Escalate))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("request budget exhausted")
			return ReplyBusy
		}
		log.WithError(err).Error("answer generation failed")
		sentry.CaptureExceptionWithContext(ctx, err)
		return ReplyGenError
	}
	return answer
}

func (b *Bot) assemble(message string, courses, faqs []record.Record) facts.Payload {
	m, ok := match.Select(message, courses, faqs)
	if !ok {
		return facts.ForFallback(courses)
	}
	if m.Record.Kind == record.KindCourse {
		return facts.ForCourse(&m.Record)
	}
	return facts.ForFAQ(&m.Record)
}

func (b *Bot) generate(ctx context.Context, question, factContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GenerateTimeout)
	defer cancel()
	return b.generator.Generate(ctx, question, factContext)
}

func (b *Bot) recordDecision(d intent.Decision) {
	if b.metrics == nil {
		return
	}
	b.metrics.RecordIntentDecision(d.Reason)
	b.recordEscalation(d)
}

func (b *Bot) recordIntent(intentLabel string, d intent.Decision) {
	if b.metrics == nil {
		return
	}
	b.metrics.RecordIntentDecision(intentLabel)
	b.recordEscalation(d)
}

func (b *Bot) recordEscalation(d intent.Decision) {
	if d.Urgent {
		b.metrics.RecordEscalation("urgent")
	} else if d.Escalate {
		b.metrics.RecordEscalation("price")
	}
}
