package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionToggleWireframe
	ActionToggleFaceFilter
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys to logical actions and tracks held state
// plus per-frame press/release edges.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions map[glfw.Key][]Action
	keyDown      map[glfw.Key]bool

	// number of held keys bound to each action
	held         [ActionCount]int
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates a new InputManager with the free-fly bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
		keyDown:      make(map[glfw.Key]bool),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	im.BindKey(glfw.KeyF1, ActionToggleWireframe)
	im.BindKey(glfw.KeyF2, ActionToggleFaceFilter)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action. Several keys may share
// an action; it stays active while any of them is held.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
	if im.keyDown[key] {
		im.press(action)
	}
}

// UnbindKey removes all action bindings for a key, releasing them if the
// key is held.
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.keyDown[key] {
		for _, act := range im.keyToActions[key] {
			im.release(act)
		}
	}
	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	isPressed := action == glfw.Press || action == glfw.Repeat

	im.mu.Lock()
	defer im.mu.Unlock()
	if im.keyDown[key] == isPressed {
		return // repeat, or a release we never saw pressed
	}
	if isPressed {
		im.keyDown[key] = true
	} else {
		delete(im.keyDown, key)
	}
	for _, act := range im.keyToActions[key] {
		if isPressed {
			im.press(act)
		} else {
			im.release(act)
		}
	}
}

// press and release latch edges only on the first press and last release.
func (im *InputManager) press(act Action) {
	if im.held[act] == 0 {
		im.justPressed[act] = true
	}
	im.held[act]++
}

func (im *InputManager) release(act Action) {
	if im.held[act] == 0 {
		return
	}
	im.held[act]--
	if im.held[act] == 0 {
		im.justReleased[act] = true
	}
}

// SetKeyCallback routes the window's key events into the manager
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate must be called at the end of each frame to clear edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.held[action] > 0
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}

// Axis folds a pair of opposing actions into -1, 0 or 1.
func (im *InputManager) Axis(positive, negative Action) float32 {
	var v float32
	if im.IsActive(positive) {
		v++
	}
	if im.IsActive(negative) {
		v--
	}
	return v
}
