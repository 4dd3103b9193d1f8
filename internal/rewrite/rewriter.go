package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"univoice/internal/ai"
)

var ErrGeneration = errors.New("message rewriting failed")

// SystemPrompt is the fixed policy handed to the generation service.
const SystemPrompt = `あなたは大学の学生から教員への匿名メッセージを仲介する編集者です。
次の規則を必ず守ってください。
- 送信者を特定できる情報(氏名、学籍番号、所属、具体的な日時や場所、個人的な事情)はすべて取り除く。
- 攻撃的・感情的な表現は、建設的で具体的な要望や提案に言い換える。
- 宛先の先生に向けた、丁寧で完結した本文として書く。
- 件名、署名、前置きや解説は書かない。本文のみを出力する。`

// Rewriter turns raw student text into a sanitized message body.
type Rewriter struct {
	generator ai.Generator
}

func New(generator ai.Generator) *Rewriter {
	return &Rewriter{generator: generator}
}

func (r *Rewriter) Rewrite(ctx context.Context, original, recipient string) (string, error) {
	prompt := BuildPrompt(original, recipient)

	out, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", ErrGeneration, ctxErr)
		}
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty content", ErrGeneration)
	}
	return out, nil
}

// BuildPrompt repeats the policy inline so providers that ignore system
// instructions still receive it.
func BuildPrompt(original, recipient string) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n\n宛先: ")
	b.WriteString(strings.TrimSpace(recipient))
	b.WriteString("\n元のメッセージ:\n")
	b.WriteString(strings.TrimSpace(original))
	b.WriteString("\n\n書き直した本文:")
	return b.String()
}
