package store

import (
	"context"
	"fmt"
	"time"

	"github.com/qihuang/bianzheng/ent"
	"github.com/qihuang/bianzheng/ent/answerevent"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetSyndromeID(data.SyndromeID).
		SetDiseaseID(data.DiseaseID).
		SetQuestionType(data.QuestionType).
		SetQuestionText(data.QuestionText).
		SetCorrectAnswer(data.CorrectAnswer).
		SetLearnerAnswer(data.LearnerAnswer).
		SetCorrect(data.Correct).
		SetTimeMs(data.TimeMs).
		SetQuality(data.Quality).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) LatestAnswerTime(ctx context.Context, syndromeID string) (time.Time, error) {
	ae, err := r.client.AnswerEvent.Query().
		Where(answerevent.SyndromeID(syndromeID)).
		Order(ent.Desc(answerevent.FieldTimestamp)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("query latest answer time: %w", err)
	}
	return ae.Timestamp, nil
}

func (r *eventRepo) SyndromeAccuracy(ctx context.Context, syndromeID string) (float64, error) {
	events, err := r.client.AnswerEvent.Query().
		Where(answerevent.SyndromeID(syndromeID)).
		All(ctx)
	if err != nil {
		return 0, fmt.Errorf("query syndrome accuracy: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	correct := 0
	for _, e := range events {
		if e.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(events)), nil
}

func (r *eventRepo) AccuracyByDisease(ctx context.Context) (map[string]AccuracyStats, error) {
	events, err := r.client.AnswerEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query disease accuracy: %w", err)
	}

	stats := make(map[string]AccuracyStats)
	for _, e := range events {
		s := stats[e.DiseaseID]
		s.Total++
		if e.Correct {
			s.Correct++
		}
		stats[e.DiseaseID] = s
	}
	return stats, nil
}
