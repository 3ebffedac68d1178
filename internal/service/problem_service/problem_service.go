package problem_service

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Start prepares the problem cache. cacheSize <= 0 uses the default size.
func (p *ProblemService) Start(cacheSize int) {
	p.startOnce.Do(func() {
		if p.DB == nil {
			panic("problem service expects non-nil db")
		}
		if cacheSize <= 0 {
			cacheSize = defaultCacheSize
		}

		p.logger = logrus.WithField("from", "problem service")

		cache, err := lru.New[int32, Problem](cacheSize)
		if err != nil {
			panic(err)
		}
		p.cache = cache

		p.logger.Infof("initialized problem service with cache size %d", cacheSize)
	})
}

// PurgeCache drops every cached problem, used after content is re-authored
func (p *ProblemService) PurgeCache() {
	p.cache.Purge()
	p.logger.Info("problem cache purged")
}
