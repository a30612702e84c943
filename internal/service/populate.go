package service

import (
	"context"
	"strconv"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"
)

// exerciseIndex loads the exercises behind ids keyed by id. Ids that no
// longer resolve are simply absent.
func exerciseIndex(ctx context.Context, repo repository.ExerciseRepository, ids []int64) (map[int64]*domain.Exercise, error) {
	index := make(map[int64]*domain.Exercise, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	exercises, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		index[exercises[i].ID] = &exercises[i]
	}
	return index, nil
}

func distinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
