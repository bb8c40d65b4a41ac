package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answered question within a drill session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("syndrome_id").
			NotEmpty().
			Comment("Syndrome this question probed"),
		field.String("disease_id").
			NotEmpty().
			Comment("Disease owning the syndrome"),
		field.String("question_type").
			NotEmpty().
			Comment("Archetype tag, or 'case' for free-form cases"),
		field.String("question_text").
			NotEmpty().
			Comment("The stem or narrative shown"),
		field.String("correct_answer").
			NotEmpty().
			Comment("The canonical correct answer"),
		field.String("learner_answer").
			Comment("What the learner chose or typed; empty on timeout"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int("time_ms").
			Comment("Milliseconds to answer"),
		field.Int("quality").
			Comment("SM-2 quality grade derived from correctness and speed"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("syndrome_id"),
		index.Fields("disease_id"),
		index.Fields("correct"),
	}
}
