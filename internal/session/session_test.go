package session

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type SessionSuite struct {
	suite.Suite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) TestNormalizePhone() {
	cases := []struct {
		input string
		want  string
	}{
		{"9900112233", "+919900112233"},
		{" 99001 12233 ", "+919900112233"},
		{"99-00-11-22-33", "+919900112233"},
		{"(99)00112233", "+919900112233"},
		{"+919900112233", "+919900112233"},
		{"+14155550100", "+14155550100"},
		{"919900112233", "+919900112233"},
	}

	for _, tc := range cases {
		s.Equal(tc.want, NormalizePhone(tc.input), "input %q", tc.input)
	}
}

func (s *SessionSuite) TestExpired() {
	s.False((&Session{}).Expired())
	s.False((&Session{ExpiresAt: time.Now().Add(time.Hour)}).Expired())
	s.True((&Session{ExpiresAt: time.Now().Add(-time.Minute)}).Expired())
}

func (s *SessionSuite) TestOnSessionChange() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	manager := NewManager(logger, nil, "")

	var got []*Session
	unsubscribe := manager.OnSessionChange(func(sess *Session) {
		got = append(got, sess)
	})

	manager.Notify(&Session{UserID: "u1"})
	s.Require().Len(got, 1)
	s.Equal("u1", got[0].UserID)

	// sign-out delivers nil
	manager.Notify(nil)
	s.Require().Len(got, 2)
	s.Nil(got[1])

	unsubscribe()
	manager.Notify(&Session{UserID: "u2"})
	s.Len(got, 2)
}
