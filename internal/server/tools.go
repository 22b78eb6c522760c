package server

import "github.com/mark3labs/mcp-go/mcp"

// sessionDesc documents the common session parameter.
const sessionDesc = "Session name; each session is an independent desktop (default: 'default')"

func (s *Server) registerTools() {
	// open
	s.mcp.AddTool(
		mcp.NewTool("open",
			mcp.WithDescription("Open a window for a registered app. Returns the new window ID; for singleton apps an existing window is refocused instead."),
			mcp.WithString("app", mcp.Description("App ID to launch (see the apps tool)"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleOpen,
	)

	// close
	s.mcp.AddTool(
		mcp.NewTool("close",
			mcp.WithDescription("Close a window. Closing an unknown window ID is a no-op."),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleClose,
	)

	// focus
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Bring a window to the front of the z-order, restoring it if minimized"),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleFocus,
	)

	// move
	s.mcp.AddTool(
		mcp.NewTool("move",
			mcp.WithDescription("Move a window to a new position. Positions are not clamped to the screen."),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithNumber("x", mcp.Description("New left edge")),
			mcp.WithNumber("y", mcp.Description("New top edge")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleMove,
	)

	// resize
	s.mcp.AddTool(
		mcp.NewTool("resize",
			mcp.WithDescription("Resize a window. Sizes clamp to the app minimum and the screen."),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithNumber("w", mcp.Description("New width")),
			mcp.WithNumber("h", mcp.Description("New height")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleResize,
	)

	// minimize
	s.mcp.AddTool(
		mcp.NewTool("minimize",
			mcp.WithDescription("Minimize a window to the dock. Geometry and z-order are retained."),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleMinimize,
	)

	// restore
	s.mcp.AddTool(
		mcp.NewTool("restore",
			mcp.WithDescription("Restore a minimized or maximized window to its previous frame"),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleRestore,
	)

	// maximize
	s.mcp.AddTool(
		mcp.NewTool("maximize",
			mcp.WithDescription("Grow a window to the full screen, remembering its frame for restore"),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleMaximize,
	)

	// snap
	s.mcp.AddTool(
		mcp.NewTool("snap",
			mcp.WithDescription("Snap a window to a screen half or quadrant"),
			mcp.WithNumber("id", mcp.Description("Window ID"), mcp.Required()),
			mcp.WithString("pos", mcp.Description("left, right, top, bottom, top-left, top-right, bottom-left, bottom-right"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleSnap,
	)

	// list
	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List open windows (dock order) or registered app definitions"),
			mcp.WithBoolean("apps", mcp.Description("List app definitions instead of windows")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleList,
	)

	// read
	s.mcp.AddTool(
		mcp.NewTool("read",
			mcp.WithDescription("Read the full desktop snapshot: windows in z-order, focus, dock. With a window ID, includes that window's app content."),
			mcp.WithNumber("id", mcp.Description("Window ID to read content for (0 = snapshot only)")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleRead,
	)

	// observe
	s.mcp.AddTool(
		mcp.NewTool("observe",
			mcp.WithDescription("Report desktop changes (opened/closed/changed windows) since the previous observe call"),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleObserve,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Render the desktop to a PNG image"),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default: 0.5)")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleScreenshot,
	)

	// batch
	s.mcp.AddTool(
		mcp.NewTool("batch",
			mcp.WithDescription("Execute multiple desktop operations sequentially. Supported ops: open, close, focus, move, resize, minimize, restore, maximize, snap, title, persona, vault-set, vault-delete. A step with id 0 targets the most recently opened window."),
			mcp.WithArray("steps", mcp.Description("Array of step objects: {op, app, id, x, y, w, h, pos, title, key, value, ttl, persona}"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop at the first failing step (default: true)")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleBatch,
	)

	// stats
	s.mcp.AddTool(
		mcp.NewTool("stats",
			mcp.WithDescription("Report session XP, level, and per-app launch counts"),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleStats,
	)

	// persona
	s.mcp.AddTool(
		mcp.NewTool("persona",
			mcp.WithDescription("Get or switch the active persona. Without 'set', lists all personas and marks the active one."),
			mcp.WithString("set", mcp.Description("Persona ID to activate")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handlePersona,
	)

	// vault_set
	s.mcp.AddTool(
		mcp.NewTool("vault_set",
			mcp.WithDescription("Store a value in the session vault"),
			mcp.WithString("key", mcp.Description("Entry key"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Entry value"), mcp.Required()),
			mcp.WithNumber("ttl", mcp.Description("Expiry in seconds (0 = never)")),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleVaultSet,
	)

	// vault_get
	s.mcp.AddTool(
		mcp.NewTool("vault_get",
			mcp.WithDescription("Fetch a value from the session vault"),
			mcp.WithString("key", mcp.Description("Entry key"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleVaultGet,
	)

	// vault_list
	s.mcp.AddTool(
		mcp.NewTool("vault_list",
			mcp.WithDescription("List all live vault entries"),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleVaultList,
	)

	// vault_delete
	s.mcp.AddTool(
		mcp.NewTool("vault_delete",
			mcp.WithDescription("Remove a vault entry"),
			mcp.WithString("key", mcp.Description("Entry key"), mcp.Required()),
			mcp.WithString("session", mcp.Description(sessionDesc)),
		),
		s.handleVaultDelete,
	)
}
