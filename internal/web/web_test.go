package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/testutil"
	"github.com/mcoot/blockdrop/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.App
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := testutil.NopLogger()
	app, err := factory.New(t.Context(), factory.Config{Logger: logger})
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		GameController:    app.GameController,
		BotService:        app.BotService,
		PresetService:     app.PresetService,
		HubManager:        app.HubManager,
		DefaultGameConfig: app.GameConfig,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// createGuestPlayer signs in as a new guest
func (ts *webTestServer) createGuestPlayer(displayName string) {
	ts.t.Helper()
	form := url.Values{"display_name": {displayName}}
	rr := ts.post("/auth/guest", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after guest creation")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
	// Drop the welcome flash so it does not leak into the next page
	delete(ts.cookies.cookies, "flash")
}

// createRegisteredPlayer registers a player through the auth service and
// adopts the resulting session
func (ts *webTestServer) createRegisteredPlayer(username, password, displayName string) {
	ts.t.Helper()
	session, err := ts.app.AuthService.RegisterPlayer(ts.t.Context(), username, password, displayName)
	require.NoError(ts.t, err, "Expected registration to succeed")
	ts.cookies.cookies["session"] = &http.Cookie{
		Name:  "session",
		Value: session.Token,
	}
}

// createGame submits the new game form and returns the game ID
func (ts *webTestServer) createGame(form url.Values) string {
	ts.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	rr := ts.post("/games", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after game creation")

	location := rr.Header().Get("Location")
	id, ok := strings.CutPrefix(location, "/games/")
	require.True(ts.t, ok, "Expected redirect to game page, got %q", location)
	require.NotEmpty(ts.t, id)
	return id
}

// followRedirect follows a redirect and returns the response.
// Works with both traditional Location headers and HTMX HX-Redirect headers.
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

// statusValue returns the text of a field in the game status panel
func statusValue(doc *goquery.Document, field string) string {
	return strings.TrimSpace(doc.Find("#game-status dd." + field).Text())
}
