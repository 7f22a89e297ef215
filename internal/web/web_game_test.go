package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/model"
)

func TestCreateGameShowsBoard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	rr := ts.get("/games/" + id)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#game-board .board[data-rows='30'][data-cols='15']")
	assert.Equal(t, 30, doc.Find("#game-board .board-row").Length())
	assertNotContainsElement(t, doc, "#game-board .cell.filled")
	assert.Equal(t, "playing", statusValue(doc, "state"))
	assert.Equal(t, "0", statusValue(doc, "pieces"))
	assertContainsElement(t, doc, "[sse-connect='/games/"+id+"/events']")
}

func TestCreateGameWithSizeAndPreset(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(url.Values{"rows": {"20"}, "cols": {"15"}, "preset": {"well"}})

	rr := ts.get("/games/" + id)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#game-board .board[data-rows='20'][data-cols='15']")
	assert.Positive(t, doc.Find("#game-board .cell.filled").Length())
	assert.Equal(t, "well", statusValue(doc, "preset"))
}

func TestCreateGameErrors(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"rows not a number", url.Values{"rows": {"lots"}}, "Rows must be a number"},
		{"cols not a number", url.Values{"cols": {"x"}}, "Columns must be a number"},
		{"too small", url.Values{"rows": {"2"}, "cols": {"2"}}, "Could not create game"},
		{"unknown preset", url.Values{"preset": {"nope"}}, "preset not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.createGuestPlayer("Alice")

			rr := ts.post("/games", tt.form)
			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/", rr.Header().Get("Location"))

			doc := parseHTML(ts.followRedirect(rr).Body)
			assertContainsText(t, doc, ".flash-error", tt.want)
		})
	}
}

func TestOwnerSeesControls(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	doc := parseHTML(ts.get("/games/" + id).Body)
	assertContainsElement(t, doc, "#game-controls form[action='/games/"+id+"/step']")
	assertContainsElement(t, doc, "#game-controls form[action='/games/"+id+"/autoplay']")
	assertContainsElement(t, doc, "#game-controls form[action='/games/"+id+"/place']")
	assertContainsElement(t, doc, "#game-controls form[action='/games/"+id+"/reset']")
	assertContainsElement(t, doc, "#game-controls form[action='/games/"+id+"/abandon']")
	assertContainsElement(t, doc, "select[name='strategy'] option[value='greedy']")
}

func TestWatcherSeesNoControls(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	ts.cookies = newCookieJar()
	ts.createGuestPlayer("Bob")

	rr := ts.get("/games/" + id)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#game-board")
	assertContainsElement(t, doc, "#game-status")
	assertNotContainsElement(t, doc, "#game-controls")
}

func TestWatcherCannotDriveGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	ts.cookies = newCookieJar()
	ts.createGuestPlayer("Bob")

	rr := ts.post("/games/"+id+"/step", url.Values{"strategy": {"greedy"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "does not own")
	assert.Equal(t, "0", statusValue(doc, "pieces"))
}

func TestStepPlacesOnePiece(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	rr := ts.post("/games/"+id+"/step", url.Values{"strategy": {"greedy"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games/"+id, rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-info", "Placed 1 piece")
	assert.Equal(t, "1", statusValue(doc, "pieces"))
	assert.Equal(t, 4, doc.Find("#game-board .cell.filled").Length())
	assertContainsElement(t, doc, "#game-status dd.last")
}

func TestAutoplayPlacesRequestedPieces(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	rr := ts.post("/games/"+id+"/autoplay", url.Values{"strategy": {"random"}, "pieces": {"5"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-info", "Placed 5 pieces")
	assert.Equal(t, "5", statusValue(doc, "pieces"))
}

func TestAutoplayErrors(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"bad pieces", url.Values{"pieces": {"many"}}, "Pieces must be a positive number"},
		{"negative pieces", url.Values{"pieces": {"-1"}}, "Pieces must be a positive number"},
		{"unknown strategy", url.Values{"strategy": {"psychic"}, "pieces": {"1"}}, "invalid bot strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.createGuestPlayer("Alice")
			id := ts.createGame(nil)

			rr := ts.post("/games/"+id+"/autoplay", tt.form)
			require.Equal(t, http.StatusSeeOther, rr.Code)

			doc := parseHTML(ts.followRedirect(rr).Body)
			assertContainsText(t, doc, ".flash-error", tt.want)
			assert.Equal(t, "0", statusValue(doc, "pieces"))
		})
	}
}

func TestPlacePiece(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	rr := ts.post("/games/"+id+"/place", url.Values{"rotations": {"0"}, "column": {"7"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertNotContainsElement(t, doc, ".flash-error")
	assert.Equal(t, "1", statusValue(doc, "pieces"))
	assert.Equal(t, 4, doc.Find("#game-board .cell.filled").Length())
}

func TestPlacePieceErrors(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing column", url.Values{"rotations": {"0"}}, "Invalid column"},
		{"column not a number", url.Values{"column": {"left"}}, "Invalid column"},
		{"rotation not a number", url.Values{"rotations": {"x"}, "column": {"3"}}, "Invalid rotation"},
		{"rotation out of range", url.Values{"rotations": {"4"}, "column": {"3"}}, "Could not place piece"},
		{"column off the board", url.Values{"column": {"99"}}, "Could not place piece"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.createGuestPlayer("Alice")
			id := ts.createGame(nil)

			rr := ts.post("/games/"+id+"/place", tt.form)
			require.Equal(t, http.StatusSeeOther, rr.Code)

			doc := parseHTML(ts.followRedirect(rr).Body)
			assertContainsText(t, doc, ".flash-error", tt.want)
			assert.Equal(t, "0", statusValue(doc, "pieces"))
		})
	}
}

func TestResetGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	ts.post("/games/"+id+"/autoplay", url.Values{"pieces": {"3"}})

	rr := ts.post("/games/"+id+"/reset", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-info", "Game reset")
	assert.Equal(t, "0", statusValue(doc, "pieces"))
	assert.Equal(t, "0", statusValue(doc, "score"))
	assertNotContainsElement(t, doc, "#game-board .cell.filled")
}

func TestAbandonGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	rr := ts.post("/games/"+id+"/abandon", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-info", "Game abandoned")
	assertContainsText(t, doc, "#game-list", string(model.GameStateAbandoned))

	doc = parseHTML(ts.get("/games/" + id).Body)
	assert.Equal(t, "abandoned", statusValue(doc, "state"))
	assertNotContainsElement(t, doc, "form.step-form")
	assertNotContainsElement(t, doc, "form.reset-form")
	assertNotContainsElement(t, doc, "form.abandon-form")
}

func TestActionsOnAbandonedGameFail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)
	ts.post("/games/"+id+"/abandon", nil)
	delete(ts.cookies.cookies, "flash")

	rr := ts.post("/games/"+id+"/step", nil)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "abandoned")
}

func TestHTMXActionsUseHXRedirect(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	id := ts.createGame(nil)

	rr := ts.postHTMX("/games/"+id+"/step", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/games/"+id, rr.Header().Get("HX-Redirect"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assert.Equal(t, "1", statusValue(doc, "pieces"))
}

func TestHomeListsGames(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	first := ts.createGame(nil)
	second := ts.createGame(nil)

	doc := parseHTML(ts.get("/").Body)
	assertContainsElement(t, doc, "#game-list a[href='/games/"+first+"']")
	assertContainsElement(t, doc, "#game-list a[href='/games/"+second+"']")
}
