package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestCreation(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"display_name": {"Alice"}}
	rr := ts.post("/auth/guest", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "Alice")
	assertContainsElement(t, doc, "form[action='/games']")
	assertNotContainsElement(t, doc, "#guest-form")
}

func TestGuestCreationEmptyName(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"display_name": {"   "}}
	rr := ts.post("/auth/guest", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Display name is required")
}

func TestGuestCreationFollowsNext(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"local path", "/games/abc", "/games/abc"},
		{"protocol relative", "//evil.example", "/"},
		{"absolute url", "https://evil.example/", "/"},
		{"empty", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newWebTestServer(t)
			rr := ts.post("/auth/guest", url.Values{"display_name": {"Alice"}, "next": {tt.next}})
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.want, rr.Header().Get("Location"))
		})
	}
}

func TestRegister(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"username":         {"alice"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
		"display_name":     {"Alice"},
	}
	rr := ts.post("/register", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "Alice")
	assertContainsText(t, doc, ".flash-success", "Account created")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createRegisteredPlayer("alice", "secret123", "Alice")
	ts.cookies = newCookieJar()

	form := url.Values{
		"username":         {"alice"},
		"password":         {"different456"},
		"password_confirm": {"different456"},
		"display_name":     {"Alice2"},
	}
	rr := ts.post("/register", form)

	assert.Equal(t, http.StatusConflict, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".field-error[data-field='username']", "already taken")
	assert.Equal(t, "alice", doc.Find("input[name='username']").AttrOr("value", ""))
	assert.False(t, ts.cookies.hasSession())
}

func TestLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createRegisteredPlayer("bob", "secret123", "Bob")
	ts.cookies = newCookieJar()

	form := url.Values{
		"username": {"bob"},
		"password": {"secret123"},
		"next":     {"/games/xyz"},
	}
	rr := ts.post("/login", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games/xyz", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createRegisteredPlayer("bob", "secret123", "Bob")
	ts.cookies = newCookieJar()

	form := url.Values{
		"username": {"bob"},
		"password": {"wrongpass"},
	}
	rr := ts.post("/login", form)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "p.error", "Invalid username or password")
	assert.Equal(t, "bob", doc.Find("input[name='username']").AttrOr("value", ""))
	assert.False(t, ts.cookies.hasSession())
}

func TestLoginMissingFields(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/login", url.Values{"username": {"bob"}})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "p.error", "required")
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	token := ts.cookies.cookies["session"].Value

	rr := ts.post("/auth/logout", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	_, err := ts.app.AuthService.ValidateSession(token)
	assert.Error(t, err, "logout should end the session server-side")

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#guest-form")
	assertContainsText(t, doc, ".flash-info", "logged out")
}

func TestProtectedRouteRedirect(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/abc123")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?next=%2Fgames%2Fabc123", rr.Header().Get("Location"))
}

func TestHomeCarriesNextIntoGuestForm(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/?next=%2Fgames%2Fabc123")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, "/games/abc123", doc.Find("#guest-form input[name='next']").AttrOr("value", ""))
}

func TestSessionPersistence(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	for range 3 {
		rr := ts.get("/")
		assert.Equal(t, http.StatusOK, rr.Code)
		doc := parseHTML(rr.Body)
		assertContainsText(t, doc, "#nav-player", "Alice")
	}
}

func TestStaleSessionCookieIsIgnored(t *testing.T) {
	ts := newWebTestServer(t)
	ts.cookies.cookies["session"] = &http.Cookie{Name: "session", Value: "sess_doesnotexist"}

	rr := ts.get("/")

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#guest-form")
}

func TestLoginPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/login")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#login-form")
	assertContainsElement(t, doc, "input[name='username']")
	assertContainsElement(t, doc, "input[name='password']")
}

func TestLoginPageRedirectsWhenSignedIn(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	rr := ts.get("/login")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestRegisterPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/register")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#register-form")
	assertContainsElement(t, doc, "input[name='password_confirm']")
}

func TestHomePage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#guest-form")
	assertContainsText(t, doc, "nav", "Log in")
	assertNotContainsElement(t, doc, "#new-game-form")
}

func TestHomePageAuthenticated(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Welcome, Alice")
	assertContainsElement(t, doc, "#new-game-form")
	assertContainsElement(t, doc, "#new-game-form option[value='well']")
	assertContainsElement(t, doc, "#game-list")
}
