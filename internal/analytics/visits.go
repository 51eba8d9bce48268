package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// VisitTracker - счетчики посещений на базе redis.
// nil-трекер безопасен: все операции превращаются в no-op,
// когда redis не сконфигурирован.
type VisitTracker struct {
	rdb *redis.Client
}

func NewVisitTracker(rdb *redis.Client) *VisitTracker {
	return &VisitTracker{rdb: rdb}
}

func (t *VisitTracker) Enabled() bool {
	return t != nil && t.rdb != nil
}

// Track фиксирует посещение страницы: дневной счетчик,
// HyperLogLog уникальных IP и рейтинг страниц
func (t *VisitTracker) Track(ctx context.Context, page, clientIP string) error {
	if !t.Enabled() {
		return nil
	}

	day := time.Now().UTC().Format("2006-01-02")

	pipe := t.rdb.Pipeline()
	pipe.Incr(ctx, fmt.Sprintf("visits:total:%s", day))
	pipe.PFAdd(ctx, fmt.Sprintf("visits:unique:%s", day), clientIP)
	pipe.ZIncrBy(ctx, "visits:pages", 1, page)
	_, err := pipe.Exec(ctx)
	return err
}

// DaySummary - сводка посещений за день
type DaySummary struct {
	Date      string `json:"date"`
	Visits    int64  `json:"visits"`
	UniqueIPs int64  `json:"unique_ips"`
}

// PageCount - счетчик посещений одной страницы
type PageCount struct {
	Page   string `json:"page"`
	Visits int64  `json:"visits"`
}

// Summary возвращает посещения за последние days дней и топ страниц
func (t *VisitTracker) Summary(ctx context.Context, days int) ([]DaySummary, []PageCount, error) {
	if !t.Enabled() {
		return nil, nil, nil
	}

	var result []DaySummary
	now := time.Now().UTC()
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")

		visits, err := t.rdb.Get(ctx, fmt.Sprintf("visits:total:%s", day)).Int64()
		if err != nil && err != redis.Nil {
			return nil, nil, err
		}

		unique, err := t.rdb.PFCount(ctx, fmt.Sprintf("visits:unique:%s", day)).Result()
		if err != nil {
			return nil, nil, err
		}

		result = append(result, DaySummary{Date: day, Visits: visits, UniqueIPs: unique})
	}

	top, err := t.rdb.ZRevRangeWithScores(ctx, "visits:pages", 0, 9).Result()
	if err != nil {
		return nil, nil, err
	}

	var pages []PageCount
	for _, z := range top {
		page, _ := z.Member.(string)
		pages = append(pages, PageCount{Page: page, Visits: int64(z.Score)})
	}

	return result, pages, nil
}
