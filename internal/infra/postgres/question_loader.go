package postgres

import (
	"context"
	"fmt"

	"trivia-score-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads the full question bank from Postgres. The memory-layer
// cache in front of it keeps this off the hot path.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT q.id, q.question_type, q.question_text, a.id, a.correct, a.answer_text, a.feedback
		 FROM questions q
		 JOIN answers a ON a.question_id = q.id
		 ORDER BY q.id, a.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	index := make(map[int64]int)
	for rows.Next() {
		var (
			question domain.Question
			answer   domain.Answer
		)
		if err := rows.Scan(&question.ID, &question.Type, &question.Text,
			&answer.ID, &answer.Correct, &answer.Text, &answer.Feedback); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		i, ok := index[question.ID]
		if !ok {
			i = len(questions)
			index[question.ID] = i
			questions = append(questions, question)
		}
		questions[i].Answers = append(questions[i].Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
