package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	signedIn := SessionState{Authenticated: true, UserID: "u-1"}
	anonymous := SessionState{}

	tests := []struct {
		name  string
		state SessionState
		path  string
		want  Decision
	}{
		{"dashboard without session", anonymous, "/dashboard", RedirectToLogin},
		{"nested dashboard without session", anonymous, "/dashboard/invoices", RedirectToLogin},
		{"deep dashboard without session", anonymous, "/dashboard/invoices/abc/edit", RedirectToLogin},
		{"dashboard with session", signedIn, "/dashboard", Allow},
		{"nested dashboard with session", signedIn, "/dashboard/invoices/create", Allow},
		{"login without session", anonymous, "/login", Allow},
		{"login with session", signedIn, "/login", RedirectToDashboard},
		{"root without session", anonymous, "/", Allow},
		{"root with session", signedIn, "/", Allow},
		{"lookalike prefix is public", anonymous, "/dashboards", Allow},
		{"health is public", anonymous, "/health", Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.path))
		})
	}
}

func TestDecision_Location(t *testing.T) {
	assert.Equal(t, "", Allow.Location())
	assert.Equal(t, "/login", RedirectToLogin.Location())
	assert.Equal(t, "/dashboard", RedirectToDashboard.Location())
	assert.Equal(t, "redirect_login", RedirectToLogin.String())
}

func TestProtected(t *testing.T) {
	assert.True(t, Protected("/dashboard"))
	assert.True(t, Protected("/dashboard/customers"))
	assert.False(t, Protected("/dashboard-old"))
	assert.False(t, Protected("/login"))
	assert.False(t, Protected(""))
}
