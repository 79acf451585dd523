package bot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayacademy/manychat-bot-go/internal/cache"
	"github.com/wayacademy/manychat-bot-go/internal/facts"
	"github.com/wayacademy/manychat-bot-go/internal/intent"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
)

type fakeGenerator struct {
	answer      string
	err         error
	delay       time.Duration
	lastContext string
}

func (f *fakeGenerator) Generate(ctx context.Context, question, factContext string) (string, error) {
	f.lastContext = factContext
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

type staticFetcher struct{}

func (staticFetcher) FetchRows(ctx context.Context, sheet string) ([][]string, error) {
	switch sheet {
	case "Courses":
		return [][]string{
			{"course_id", "course_name", "keywords", "price_full", "is_active", "priority"},
			{"1", "SDM", "sdm|дижитал маркетинг", "1,500,000₮", "true", "1"},
			{"2", "Excel", "excel|хүснэгт", "800,000₮", "true", "2"},
		}, nil
	default:
		return [][]string{
			{"faq_id", "q_keywords", "answer", "is_active"},
			{"1", "хаяг|байршил", "Galaxy Tower 705 тоот", "true"},
		}, nil
	}
}

func newTestBot(t *testing.T, gen Generator, budget time.Duration) *Bot {
	t.Helper()
	log := logger.NewWithWriter("error", io.Discard)
	store := cache.New(staticFetcher{}, cache.DefaultDatasets("Courses", "FAQ"), 5*time.Minute, log)
	return New(store, gen, log, nil, budget)
}

func TestRespondGateShortCircuit(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, &fakeGenerator{answer: "never"}, 0)

	assert.Equal(t, intent.ReplyEmpty, b.Respond(context.Background(), "sub", ""))
	assert.Equal(t, intent.ReplyURL, b.Respond(context.Background(), "sub", "https://spam.example"))
}

func TestRespondClarifyOnBarePriceQuestion(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, &fakeGenerator{answer: "never"}, 0)

	assert.Equal(t, intent.ReplyPrice, b.Respond(context.Background(), "sub", "Үнэ хэд вэ?"))
}

func TestRespondCourseWithEscalation(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "SDM сургалт 1,500,000₮."}
	b := newTestBot(t, gen, 0)

	out := b.Respond(context.Background(), "sub", "SDM үнэ хэд вэ?")
	assert.Equal(t, "SDM сургалт 1,500,000₮.", out)
	assert.Contains(t, gen.lastContext, "Нэр: SDM")
	assert.Contains(t, gen.lastContext, "Үнэ: 1,500,000₮")
	assert.Contains(t, gen.lastContext, facts.Phones, "price question carries handoff contacts")
}

func TestRespondFAQ(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "Манай хаяг Galaxy Tower."}
	b := newTestBot(t, gen, 0)

	out := b.Respond(context.Background(), "sub", "Та нарын хаяг хаана вэ?")
	assert.Equal(t, "Манай хаяг Galaxy Tower.", out)
	assert.Contains(t, gen.lastContext, "Galaxy Tower 705 тоот")
	assert.NotContains(t, gen.lastContext, facts.Phones, "plain question carries no contact block")
}

func TestRespondFallbackOnNoMatch(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "Манайд SDM болон Excel сургалт бий."}
	b := newTestBot(t, gen, 0)

	out := b.Respond(context.Background(), "sub", "танай сургууль ямар юм заадаг юм бол")
	require.Equal(t, "Манайд SDM болон Excel сургалт бий.", out)
	assert.Contains(t, gen.lastContext, "- SDM (ID: 1)")
	assert.Contains(t, gen.lastContext, "- Excel (ID: 2)")
}

func TestRespondGenerationError(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, &fakeGenerator{err: errors.New("provider down")}, 0)

	out := b.Respond(context.Background(), "sub", "Excel сургалт хэзээ эхлэх вэ?")
	assert.Equal(t, ReplyGenError, out)
}

func TestRespondBudgetExhausted(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, &fakeGenerator{answer: "late", delay: time.Second}, 100*time.Millisecond)

	out := b.Respond(context.Background(), "sub", "Excel сургалт хэзээ эхлэх вэ?")
	assert.Equal(t, ReplyBusy, out)
}
