package report

import (
	"strings"
)

// frame is one entry of the builder stack: the handler owning the currently
// open element, the node it materialized, and the element's own attributes
// and leading text kept for finalization at close time.
type frame struct {
	handler  elementHandler
	node     any
	attrs    attributes
	text     strings.Builder
	hasChild bool
}

// treeBuilder is the stack automaton driving the tag handlers. Every open
// event pushes a frame and every close event pops one, so the stack depth
// always mirrors the element nesting depth. A frame whose node is nil marks
// a suppressed subtree.
type treeBuilder struct {
	stack []*frame
}

func newTreeBuilder(root elementHandler, node any) *treeBuilder {
	b := &treeBuilder{}
	b.stack = append(b.stack, &frame{handler: root, node: node})
	return b
}

// open dispatches an element open event. The parent frame's handler resolves
// the child handler, which then materializes the child node onto the parent
// node.
func (b *treeBuilder) open(tag string, attrs attributes) error {
	parent := b.stack[len(b.stack)-1]
	parent.hasChild = true
	handler, err := parent.handler.childHandler(tag)
	if err != nil {
		return err
	}
	node, err := handler.start(attrs, parent.node)
	if err != nil {
		return err
	}
	b.stack = append(b.stack, &frame{handler: handler, node: node, attrs: attrs})
	return nil
}

// text accumulates character data of the open element. Only text preceding
// the first child element belongs to the element itself; trailing text after
// a child is ignored.
func (b *treeBuilder) text(data string) {
	top := b.stack[len(b.stack)-1]
	if !top.hasChild {
		top.text.WriteString(data)
	}
}

// close dispatches an element close event, finalizing the node of the popped
// frame.
func (b *treeBuilder) close() error {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return top.handler.end(top.attrs, top.text.String(), top.node)
}
