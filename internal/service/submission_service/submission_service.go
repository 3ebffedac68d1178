package submission_service

import (
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
)

func (s *SubmissionService) Start() {
	s.logger = logrus.WithField("from", "submission service")

	if s.Problems == nil {
		panic("submission service expects non-nil problem getter")
	}
	if s.Progress == nil {
		panic("submission service expects non-nil attempt recorder")
	}
	if s.Evaluator == nil {
		s.Evaluator = &evaluation_service.EvaluationService{}
	}
	if s.Events == nil {
		s.Events = discardPublisher{}
	}

	s.logger.Infof("submission service started, publishing events with %T", s.Events)
}
