package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ojplay/internal/common/cache"
	"ojplay/internal/fakeexec/model"
	appErr "ojplay/pkg/errors"
)

const (
	jobKeyPrefix   = "fake:job:"
	readsKeySuffix = ":reads"
)

// JobRepository keeps jobs and their read counters in the cache.
type JobRepository struct {
	cache cache.Cache
	TTL   time.Duration
}

// NewJobRepository creates a new repository.
func NewJobRepository(cacheClient cache.Cache, ttl time.Duration) *JobRepository {
	return &JobRepository{cache: cacheClient, TTL: ttl}
}

// Get returns a job by id.
func (r *JobRepository) Get(ctx context.Context, jobID string) (model.Job, error) {
	if jobID == "" {
		return model.Job{}, appErr.ValidationError("job_id", "required")
	}
	if r.cache == nil {
		return model.Job{}, appErr.New(appErr.CacheError).WithMessage("cache client is not initialized")
	}
	val, err := r.cache.Get(ctx, jobKeyPrefix+jobID)
	if err != nil {
		return model.Job{}, appErr.Wrapf(err, appErr.CacheError, "load job failed")
	}
	if val == "" {
		return model.Job{}, appErr.NotFoundError("job").WithDetail("job_id", jobID)
	}
	var job model.Job
	if err := json.Unmarshal([]byte(val), &job); err != nil {
		return model.Job{}, appErr.Wrapf(err, appErr.CacheError, "decode job failed")
	}
	return job, nil
}

// Create stores a new job with the repository TTL. An existing id is rejected.
func (r *JobRepository) Create(ctx context.Context, job model.Job) error {
	data, err := r.encode(job)
	if err != nil {
		return err
	}
	ok, err := r.cache.SetNX(ctx, jobKeyPrefix+job.ID, data, cache.JitterTTL(r.TTL))
	if err != nil {
		return appErr.Wrapf(err, appErr.CacheError, "store job failed")
	}
	if !ok {
		return appErr.Newf(appErr.CacheError, "job %s already exists", job.ID).WithDetail("job_id", job.ID)
	}
	return nil
}

// Settle overwrites a job that carries its final status and drops its read counter.
func (r *JobRepository) Settle(ctx context.Context, job model.Job) error {
	if job.Final == nil {
		return appErr.ValidationError("final", "required")
	}
	data, err := r.encode(job)
	if err != nil {
		return err
	}
	if err := r.cache.Set(ctx, jobKeyPrefix+job.ID, data, cache.JitterTTL(r.TTL)); err != nil {
		return appErr.Wrapf(err, appErr.CacheError, "store job failed")
	}
	if err := r.cache.Del(ctx, jobKeyPrefix+job.ID+readsKeySuffix); err != nil {
		return appErr.Wrapf(err, appErr.CacheError, "drop job counter failed")
	}
	return nil
}

func (r *JobRepository) encode(job model.Job) (string, error) {
	if job.ID == "" {
		return "", appErr.ValidationError("job_id", "required")
	}
	if r.cache == nil {
		return "", appErr.New(appErr.CacheError).WithMessage("cache client is not initialized")
	}
	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job failed: %w", err)
	}
	return string(data), nil
}

// Advance counts one status read of the job and returns the new total.
func (r *JobRepository) Advance(ctx context.Context, jobID string) (int64, error) {
	if r.cache == nil {
		return 0, appErr.New(appErr.CacheError).WithMessage("cache client is not initialized")
	}
	key := jobKeyPrefix + jobID + readsKeySuffix
	n, err := r.cache.Incr(ctx, key)
	if err != nil {
		return 0, appErr.Wrapf(err, appErr.CacheError, "advance job failed")
	}
	if n == 1 && r.TTL > 0 {
		if err := r.cache.Expire(ctx, key, r.TTL); err != nil {
			return 0, appErr.Wrapf(err, appErr.CacheError, "expire job counter failed")
		}
	}
	return n, nil
}
