package validators

import "testing"

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

func TestCheckFormPasses(t *testing.T) {
	fields := CheckForm(loginForm{Email: "a@b.com", Password: "secret1"})
	if fields != nil {
		t.Fatalf("expected no field errors, got %v", fields)
	}
}

func TestCheckFormReportsPerFieldMessages(t *testing.T) {
	fields := CheckForm(loginForm{Email: "not-an-email", Password: "abc"})
	if len(fields) != 2 {
		t.Fatalf("expected two field errors, got %v", fields)
	}
	if fields["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", fields["email"])
	}
	if fields["password"] != "must be at least 6 characters" {
		t.Fatalf("unexpected password message %q", fields["password"])
	}
}

func TestCheckFormRequired(t *testing.T) {
	fields := CheckForm(loginForm{})
	if fields["email"] != "is required" || fields["password"] != "is required" {
		t.Fatalf("expected required messages, got %v", fields)
	}
}
