package test

import (
	"context"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

// TokenParserStub resolves every token to a fixed user id or error.
type TokenParserStub struct {
	ID  int64
	Err error
}

func (s TokenParserStub) ParseToken(string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if s.ID != 0 {
		return s.ID, nil
	}
	return 1, nil
}

// UserSourceStub serves a fixed user record for role checks.
type UserSourceStub struct {
	User *model.User
	Err  error
}

func (s UserSourceStub) UserByID(_ context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: id, Role: model.RoleOperations, Subteam: "electrical"}, nil
}
