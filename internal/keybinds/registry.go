package keybinds

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// multiKeyState tracks multi-key sequences (like 'gg' in vim)
	multiKeyState map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context]map[string]Action),
		multiKeyState: make(map[Context]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Match attempts to match a key to an action in the given context.
// Contexts are checked in priority order: specific context, then global.
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if contextBindings, ok := r.bindings[context]; ok {
		if action, ok := contextBindings[key]; ok {
			return action, true
		}
	}
	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		if action, ok := globalBindings[key]; ok {
			return action, true
		}
	}
	return "", false
}

// MatchMultiKey handles the "gg" go-to-top sequence on top of single-key
// Match. It returns the action, whether it's a complete match, and whether
// the key started a pending sequence (partial match).
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	if prevKey, hasPending := r.multiKeyState[context]; hasPending {
		sequence := prevKey + key
		delete(r.multiKeyState, context)
		if action, ok := r.Match(context, sequence); ok {
			return action, true, false
		}
		return "", false, false
	}

	if key == "g" {
		r.multiKeyState[context] = key
		return "", false, true
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

// ClearMultiKeyState clears any pending multi-key state for a context.
func (r *Registry) ClearMultiKeyState(context Context) {
	delete(r.multiKeyState, context)
}

// GetBinding returns the key(s) bound to an action in a context, falling
// back to the global context if the specific one has none.
func (r *Registry) GetBinding(context Context, action Action) []string {
	var keys []string
	if contextBindings, ok := r.bindings[context]; ok {
		for key, act := range contextBindings {
			if act == action {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 {
		if globalBindings, ok := r.bindings[ContextGlobal]; ok {
			for key, act := range globalBindings {
				if act == action {
					keys = append(keys, key)
				}
			}
		}
	}
	return keys
}

// ListBindings returns all bindings visible in a context, used to render
// the help dialog.
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	if contextBindings, ok := r.bindings[context]; ok {
		for key, action := range contextBindings {
			bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
		}
	}
	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		for key, action := range globalBindings {
			if _, shadowed := r.bindings[context][key]; shadowed {
				continue
			}
			bindings = append(bindings, Binding{Key: key, Action: action, Context: ContextGlobal})
		}
	}
	return bindings
}
