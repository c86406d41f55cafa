// Package report reconstructs an in-memory result tree from a serialized
// execution-report document. An event-driven tag-dispatch state machine
// consumes nested open/close element events and drives per-tag handlers that
// materialize and finalize nodes of the result package. Older tag names,
// attribute names and timestamp encodings used by earlier report revisions
// are accepted transparently alongside the current ones.
package report

import (
	"github.com/aaltat/robotframework/model"
)

// attributes is the attribute map of one element.
type attributes map[string]string

// elementHandler owns the parse logic for one tag: which child tags are
// permitted directly beneath it, how to materialize a node when the tag
// opens and how to finalize the node's scalar attributes when it closes.
type elementHandler interface {
	// tag returns the tag this handler owns.
	tag() string
	// childHandler returns the handler for a child tag, or a DataError when
	// the child is not permitted under this tag.
	childHandler(tag string) (elementHandler, error)
	// start materializes and attaches a child node onto the given parent
	// node. Returning a nil node suppresses the whole subtree.
	start(attrs attributes, node any) (any, error)
	// end finalizes the node's scalar attributes from the element's
	// attributes and trailing text.
	end(attrs attributes, text string, node any) error
}

// baseHandler implements the shared handler behavior: permitted-children
// validation against the static handler table, a pass-through start and a
// no-op end.
type baseHandler struct {
	name     string
	children map[string]struct{}
}

func newBaseHandler(name string, children ...string) baseHandler {
	set := make(map[string]struct{}, len(children))
	for _, child := range children {
		set[child] = struct{}{}
	}
	return baseHandler{name: name, children: set}
}

func (h *baseHandler) tag() string {
	return h.name
}

func (h *baseHandler) childHandler(tag string) (elementHandler, error) {
	if _, ok := h.children[tag]; !ok {
		return nil, model.NewDataError("incompatible child element '%s' for '%s'", tag, h.name)
	}
	return handlers[tag], nil
}

func (h *baseHandler) start(attrs attributes, node any) (any, error) {
	return node, nil
}

func (h *baseHandler) end(attrs attributes, text string, node any) error {
	return nil
}

// handlers is the static tag-to-handler table. It is populated once during
// package initialization from a fixed handler list; handlers never mutate
// it afterwards.
var handlers map[string]elementHandler

func init() {
	table := []elementHandler{
		newRobotHandler(),
		newSuiteHandler(),
		newTestHandler(),
		newKeywordHandler(),
		newForHandler(),
		newWhileHandler(),
		newIterationHandler(),
		newGroupHandler(),
		newIfHandler(),
		newBranchHandler(),
		newTryHandler(),
		newPatternHandler(),
		newVariableHandler(),
		newReturnHandler(),
		newContinueHandler(),
		newBreakHandler(),
		newErrorHandler(),
		newMessageHandler(),
		newStatusHandler(true),
		newDocHandler(),
		newMetadataHandler(),
		newMetadataItemHandler(),
		newMetaHandler(),
		newTagsHandler(),
		newTagHandler(),
		newTimeoutHandler(),
		newAssignHandler(),
		newVarValueHandler(),
		newArgumentsHandler(),
		newArgumentHandler(),
		newValueHandler(),
		newErrorsHandler(),
		newStatisticsHandler(),
	}
	handlers = make(map[string]elementHandler, len(table))
	for _, h := range table {
		handlers[h.tag()] = h
	}
}
