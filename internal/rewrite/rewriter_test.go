package rewrite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestRewrite(t *testing.T) {
	var seen string
	r := New(generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "  授業の進行速度について再考をご検討いただけますと幸いです。\n", nil
	}))

	out, err := r.Rewrite(context.Background(), "授業が速い", "田中先生")
	require.NoError(t, err)

	assert.Equal(t, "授業の進行速度について再考をご検討いただけますと幸いです。", out)
	assert.Contains(t, seen, "宛先: 田中先生")
	assert.Contains(t, seen, "授業が速い")
	assert.Contains(t, seen, "署名")
}

func TestRewriteFailures(t *testing.T) {
	t.Run("upstream error", func(t *testing.T) {
		r := New(generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("503")
		}))
		_, err := r.Rewrite(context.Background(), "text", "田中先生")
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("empty content", func(t *testing.T) {
		r := New(generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			return " \n ", nil
		}))
		_, err := r.Rewrite(context.Background(), "text", "田中先生")
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("timeout", func(t *testing.T) {
		r := New(generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := r.Rewrite(ctx, "text", "田中先生")
		assert.ErrorIs(t, err, ErrGeneration)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
