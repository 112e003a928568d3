package backend

import "context"

// AuthAPI wraps the backend's authentication endpoints.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI builds the auth resource client.
func NewAuthAPI(c *Client) AuthAPI {
	return AuthAPI{c: c}
}

func (a AuthAPI) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.c.post(ctx, "/auth/login", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a AuthAPI) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.c.post(ctx, "/auth/register", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a AuthAPI) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := a.c.get(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
