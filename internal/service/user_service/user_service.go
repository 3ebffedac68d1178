package user_service

import (
	"time"

	"github.com/sirupsen/logrus"
)

func (u *UserService) Start() {
	if u.DB == nil {
		panic("user service expects non-nil db")
	}
	if u.Now == nil {
		u.Now = time.Now
	}
	u.logger = logrus.WithField("from", "user service")
	u.logger.Info("user service started")
}
