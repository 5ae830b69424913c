package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appcanvas/engine/internal/domain/interpret"
	"github.com/appcanvas/engine/internal/domain/session"
	"github.com/appcanvas/engine/internal/domain/tree"
	"github.com/appcanvas/engine/internal/infrastructure/logging"
	"github.com/appcanvas/engine/internal/storage"
)

func setupRouter(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sess := session.New(tree.New())
	selector := interpret.NewSelector(nil, interpret.NewRules())

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	h := NewHandlers(sess, selector, store, "Test App", "", logging.NewNop(), nil)
	return NewRouter(h, nil, RouterConfig{}), sess
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRootAndHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode(t, w)["status"])

	w = do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 1, body["screens"])
}

func TestOperationsEndToEnd(t *testing.T) {
	r, sess := setupRouter(t)
	home := sess.ActiveScreenID()

	w := do(r, http.MethodPost, "/operations", gin.H{
		"operations": []gin.H{
			{"op": "add", "kind": "button", "screen_id": home, "props": gin.H{"text": "Join"}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["applied"])

	w = do(r, http.MethodGet, "/document", nil)
	body := decode(t, w)
	assert.NotEmpty(t, body["selected_id"])
	assert.Equal(t, true, body["can_undo"])

	w = do(r, http.MethodPost, "/undo", nil)
	body = decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["can_undo"])
	assert.Equal(t, true, body["can_redo"])
}

func TestOperationsRejectsMissingBody(t *testing.T) {
	r, _ := setupRouter(t)
	w := do(r, http.MethodPost, "/operations", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNodePatchAndDelete(t *testing.T) {
	r, sess := setupRouter(t)
	home := sess.ActiveScreenID()

	do(r, http.MethodPost, "/operations", gin.H{
		"operations": []gin.H{{"op": "add", "kind": "button", "screen_id": home}},
	})
	nodeID, ok := sess.Selection()
	require.True(t, ok)

	w := do(r, http.MethodPatch, "/nodes/"+nodeID, gin.H{"backgroundColor": "#3b82f6"})
	assert.Equal(t, http.StatusOK, w.Code)

	node, ok := sess.Document().FindNode(nodeID)
	require.True(t, ok)
	assert.Equal(t, "#3b82f6", node.Props["backgroundColor"])

	w = do(r, http.MethodDelete, "/nodes/"+nodeID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/nodes/"+nodeID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectionEndpoints(t *testing.T) {
	r, sess := setupRouter(t)
	home := sess.ActiveScreenID()

	do(r, http.MethodPost, "/operations", gin.H{
		"operations": []gin.H{{"op": "add", "kind": "text", "screen_id": home}},
	})
	nodeID, _ := sess.Selection()
	sess.ClearSelection()

	w := do(r, http.MethodPut, "/selection", gin.H{"node_id": nodeID})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/selection", gin.H{"node_id": "node_missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/selection", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_, selected := sess.Selection()
	assert.False(t, selected)
}

func TestScreenLifecycleEndpoints(t *testing.T) {
	r, sess := setupRouter(t)

	w := do(r, http.MethodPost, "/screens", gin.H{"name": "Settings", "icon": "⚙️"})
	require.Equal(t, http.StatusCreated, w.Code)
	screenID := decode(t, w)["screen_id"].(string)

	w = do(r, http.MethodPost, "/screens/"+screenID+"/activate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, screenID, sess.ActiveScreenID())

	w = do(r, http.MethodDelete, "/screens/"+screenID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The remaining screen is protected.
	w = do(r, http.MethodDelete, "/screens/"+sess.ActiveScreenID(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCommandFallsBackToRules(t *testing.T) {
	r, sess := setupRouter(t)

	w := do(r, http.MethodPost, "/command", gin.H{"prompt": `add a button "Sign Up"`})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["applied"])
	assert.NotEmpty(t, body["message"])

	nodeID, ok := sess.Selection()
	require.True(t, ok)
	node, _ := sess.Document().FindNode(nodeID)
	assert.Equal(t, "Sign Up", node.Props["text"])
}

func TestBlueprintImport(t *testing.T) {
	r, sess := setupRouter(t)

	payload := `{
		"schema": "appcanvas/blueprint",
		"version": "1",
		"screens": [
			{"title": "Home", "home": true, "blocks": ["Welcome"]},
			{"title": "About", "blocks": [{"kind": "heading", "props": {"text": "About us"}}]}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/blueprint/import", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["screens"])

	// Import resets history.
	assert.False(t, sess.CanUndo())
	assert.Len(t, sess.Document().Screens, 2)
}

func TestBlueprintImportRejectsMalformed(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/blueprint/import", bytes.NewBufferString(`{"schema":"wrong"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSaveAndSnapshots(t *testing.T) {
	r, sess := setupRouter(t)
	home := sess.ActiveScreenID()

	do(r, http.MethodPost, "/operations", gin.H{
		"operations": []gin.H{{"op": "add", "kind": "hero", "screen_id": home}},
	})

	w := do(r, http.MethodPost, "/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/snapshots", gin.H{"name": "v1"})
	require.Equal(t, http.StatusCreated, w.Code)
	snapID := decode(t, w)["id"].(string)

	do(r, http.MethodPost, "/operations", gin.H{
		"operations": []gin.H{{"op": "delete_selected"}},
	})

	w = do(r, http.MethodPost, "/snapshots/"+snapID+"/restore", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	doc := sess.Document()
	screen, _ := doc.Screen(doc.Home().ID)
	assert.Len(t, screen.Nodes, 1)

	w = do(r, http.MethodGet, "/snapshots", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/snapshots/"+snapID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExport(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/export?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "screens")

	w = do(r, http.MethodGet, "/export?format=yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	w = do(r, http.MethodGet, "/export?scope=selection", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/export?scope=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
