package judge

import (
	"context"
)

// Stub is a placeholder Judge. It ignores the submission and always returns
// the same evaluation.
type Stub struct{}

// NewStub creates the placeholder judge.
func NewStub() *Stub {
	return &Stub{}
}

// Name returns "stub".
func (*Stub) Name() string {
	return "stub"
}

// Score returns a fresh copy of the fixed evaluation.
func (*Stub) Score(ctx context.Context, sub *Submission) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return FixedEvaluation(), nil
}

// FixedEvaluation returns the evaluation served by Stub. The breakdown sums to
// ScoreTotal.
func FixedEvaluation() *Evaluation {
	return &Evaluation{
		ScoreTotal: 86,
		Feedback: Feedback{
			Verdict: "استدلال قوی و منسجم است و با اصلاحات جزئی قابل ارائه در دادگاه است.",
			Strengths: []string{
				"استناد دقیق به مواد قانونی مرتبط",
				"ساختار منطقی و ترتیب مناسب استدلال‌ها",
				"پاسخ‌گویی به ادعای اصلی طرف مقابل",
			},
			Weaknesses: []string{
				"بررسی نکردن رویه قضایی و آرای وحدت رویه",
				"توجه ناکافی به ادله اثبات دعوا",
			},
			Tips: []string{
				"به آرای وحدت رویه دیوان عالی کشور استناد کنید.",
				"ادله و مستندات را به ترتیب اهمیت مرتب کنید.",
				"در پایان، خواسته خود را به‌صورت صریح و خلاصه بیان کنید.",
			},
			Breakdown: map[string]int{
				"legal_basis":    25,
				"reasoning":      23,
				"evidence":       18,
				"structure":      12,
				"persuasiveness": 8,
			},
			Confidence: 0.82,
		},
	}
}
