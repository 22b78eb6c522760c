package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/azinterface/azdesk/internal/model"
	"github.com/azinterface/azdesk/internal/persona"
	"github.com/azinterface/azdesk/internal/render"
	"github.com/azinterface/azdesk/internal/script"
	"github.com/azinterface/azdesk/internal/session"
	"github.com/azinterface/azdesk/internal/vault"
	"github.com/azinterface/azdesk/internal/wm"
)

// opResult is the common response shape for window operations.
type opResult struct {
	OK     bool          `yaml:"ok"                json:"ok"`
	Action string        `yaml:"action"            json:"action"`
	Window *model.Window `yaml:"window,omitempty"  json:"window,omitempty"`
}

func yamlResult(v interface{}) *mcp.CallToolResult {
	b, _ := yaml.Marshal(v)
	return mcp.NewToolResultText(string(b))
}

// windowResult reports an operation outcome together with the window's
// post-operation state, when it still exists.
func windowResult(sess *session.Session, action string, id int) *mcp.CallToolResult {
	res := opResult{OK: true, Action: action}
	if win, err := sess.Desktop.Window(id); err == nil {
		res.Window = &win
	}
	return yamlResult(res)
}

func (s *Server) handleOpen(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")
	if app == "" {
		return mcp.NewToolResultError("app parameter is required"), nil
	}

	sess := s.session(StringParam(params, "session", ""))
	id, err := sess.Open(app)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "open", id), nil
}

func (s *Server) handleClose(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)

	sess := s.session(StringParam(params, "session", ""))
	sess.Close(id)
	return yamlResult(opResult{OK: true, Action: "close"}), nil
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Focus(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "focus", id), nil
}

func (s *Server) handleMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)
	x := IntParam(params, "x", 0)
	y := IntParam(params, "y", 0)

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Arrange(func(d *wm.Desktop) error { return d.Move(id, x, y) }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "move", id), nil
}

func (s *Server) handleResize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)
	w := IntParam(params, "w", 0)
	h := IntParam(params, "h", 0)

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Arrange(func(d *wm.Desktop) error { return d.Resize(id, w, h) }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "resize", id), nil
}

func (s *Server) handleMinimize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Minimize(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "minimize", id), nil
}

func (s *Server) handleRestore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Arrange(func(d *wm.Desktop) error { return d.Restore(id) }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "restore", id), nil
}

func (s *Server) handleMaximize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Arrange(func(d *wm.Desktop) error { return d.Maximize(id) }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "maximize", id), nil
}

func (s *Server) handleSnap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := IntParam(params, "id", 0)
	pos, err := wm.ParseSnapPosition(StringParam(params, "pos", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := s.session(StringParam(params, "session", ""))
	if err := sess.Arrange(func(d *wm.Desktop) error { return d.Snap(id, pos) }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return windowResult(sess, "snap", id), nil
}

func (s *Server) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))

	if BoolParam(params, "apps", false) {
		return yamlResult(sess.Registry.List()), nil
	}
	return yamlResult(sess.Desktop.Snapshot().Dock()), nil
}

func (s *Server) handleRead(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))
	id := IntParam(params, "id", 0)

	snap := sess.Desktop.Snapshot()
	out := struct {
		Snapshot model.Snapshot    `yaml:"snapshot"          json:"snapshot"`
		Dock     []model.DockEntry `yaml:"dock,omitempty"    json:"dock,omitempty"`
		Content  string            `yaml:"content,omitempty" json:"content,omitempty"`
	}{Snapshot: snap, Dock: snap.Dock()}

	if id != 0 {
		content, err := sess.Content(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out.Content = content
	}
	return yamlResult(out), nil
}

func (s *Server) handleObserve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))

	curr := sess.Desktop.Snapshot()
	prev := sess.SwapObserved(curr)
	changes := model.DiffSnapshots(prev, curr)

	out := struct {
		Since   int64                `yaml:"since"             json:"since"`
		Changes []model.WindowChange `yaml:"changes,omitempty" json:"changes,omitempty"`
	}{Since: prev.TS, Changes: changes}
	return yamlResult(out), nil
}

func (s *Server) handleScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))
	scale := FloatParam(params, "scale", 0.5)

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, sess.Desktop.Snapshot(), scale); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     b64,
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleBatch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))
	stopOnError := BoolParam(params, "stop-on-error", true)

	stepsRaw, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	arr, ok := stepsRaw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}

	// Round-trip through JSON to reuse the script step decoding.
	raw, err := json.Marshal(arr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid steps: %v", err)), nil
	}
	var steps []script.Step
	if err := json.Unmarshal(raw, &steps); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid steps: %v", err)), nil
	}

	results := script.Run(sess, steps, script.Options{StopOnError: stopOnError})
	completed := 0
	for _, r := range results {
		if r.OK {
			completed++
		}
	}

	out := struct {
		OK        bool            `yaml:"ok"        json:"ok"`
		Steps     int             `yaml:"steps"     json:"steps"`
		Completed int             `yaml:"completed" json:"completed"`
		Results   []script.Result `yaml:"results"   json:"results"`
	}{OK: completed == len(steps), Steps: len(steps), Completed: completed, Results: results}
	return yamlResult(out), nil
}

func (s *Server) handleStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))
	return yamlResult(sess.XP.Stats()), nil
}

func (s *Server) handlePersona(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))

	if id := StringParam(params, "set", ""); id != "" {
		if err := sess.SetPersona(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	active := sess.Persona()
	type personaEntry struct {
		persona.Persona `yaml:",inline"`
		Active          bool `yaml:"active,omitempty" json:"active,omitempty"`
	}
	entries := make([]personaEntry, 0)
	for _, p := range persona.List() {
		entries = append(entries, personaEntry{Persona: p, Active: p.ID == active.ID})
	}
	return yamlResult(entries), nil
}

func (s *Server) handleVaultSet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	key := StringParam(params, "key", "")
	if key == "" {
		return mcp.NewToolResultError("key parameter is required"), nil
	}
	value := StringParam(params, "value", "")
	ttl := time.Duration(IntParam(params, "ttl", 0)) * time.Second

	sess := s.session(StringParam(params, "session", ""))
	sess.Vault.Set(key, value, ttl)
	return yamlResult(opResult{OK: true, Action: "vault_set"}), nil
}

func (s *Server) handleVaultGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	key := StringParam(params, "key", "")

	sess := s.session(StringParam(params, "session", ""))
	value, ok := sess.Vault.Get(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("vault key %q not found", key)), nil
	}
	out := struct {
		Key   string `yaml:"key"   json:"key"`
		Value string `yaml:"value" json:"value"`
	}{Key: key, Value: value}
	return yamlResult(out), nil
}

func (s *Server) handleVaultList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sess := s.session(StringParam(params, "session", ""))

	entries := sess.Vault.List()
	if entries == nil {
		entries = []vault.Entry{}
	}
	return yamlResult(entries), nil
}

func (s *Server) handleVaultDelete(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	key := StringParam(params, "key", "")

	sess := s.session(StringParam(params, "session", ""))
	sess.Vault.Delete(key)
	return yamlResult(opResult{OK: true, Action: "vault_delete"}), nil
}
