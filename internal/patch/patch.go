package patch

import (
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
)

// Op is the kind of swap the remote consumer performs.
type Op string

const (
	// OpAppend appends the payload as the target's last child.
	OpAppend Op = "beforeend"
	// OpReplace replaces the target's contents with the payload.
	OpReplace Op = "innerHTML"
)

// Patch is one incremental display update. It is built, enqueued and
// discarded; nothing stores patches.
type Patch struct {
	Op      Op
	Target  string
	Payload string
}

// HeaderID derives the header container id for a span.
func HeaderID(spanID string) string { return "span-header-" + spanID }

// AttributesID derives the attribute container id for a span.
func AttributesID(spanID string) string { return "span-attributes-" + spanID }

// EventsID derives the event container id for a span.
func EventsID(spanID string) string { return "span-events-" + spanID }

// ChildrenID derives the child-span container id for a span.
func ChildrenID(spanID string) string { return "span-children-" + spanID }

// WrapperID derives the id of the span's outermost element.
func WrapperID(spanID string) string { return "span-" + spanID }

// DetailsID derives the id of the span's collapsible details section.
func DetailsID(spanID string) string { return "span-details-" + spanID }

// CheckboxID derives the id of the span's collapse toggle.
func CheckboxID(spanID string) string { return "span-checkbox-" + spanID }

// Encoder builds patches against a fixed root container.
type Encoder struct {
	containerID string
}

// NewEncoder creates an encoder whose root spans target containerID.
func NewEncoder(containerID string) *Encoder {
	return &Encoder{containerID: containerID}
}

// ContainerID returns the root container id.
func (e *Encoder) ContainerID() string { return e.containerID }

// TargetFor resolves the container a span's first render is appended to:
// the root container for roots, the parent's children container otherwise.
func (e *Encoder) TargetFor(parentID string) string {
	if parentID == "" {
		return e.containerID
	}
	return ChildrenID(parentID)
}

// Start encodes the append patch emitted when a span starts.
func (e *Encoder) Start(parentID string, frag fragment.Fragment) Patch {
	return e.encode(OpAppend, e.TargetFor(parentID), frag)
}

// End encodes the three replace patches emitted when a span ends. All
// three are emitted even when a fragment is empty; the consumer treats an
// empty replacement as a no-op.
func (e *Encoder) End(spanID string, header, attributes, events fragment.Fragment) []Patch {
	return []Patch{
		e.encode(OpReplace, HeaderID(spanID), header),
		e.encode(OpReplace, AttributesID(spanID), attributes),
		e.encode(OpReplace, EventsID(spanID), events),
	}
}

func (e *Encoder) encode(op Op, target string, frag fragment.Fragment) Patch {
	wrapper := fragment.El("div",
		fragment.Attr{Key: "hx-swap-oob", Val: string(op)},
		fragment.ID(target),
	).With(frag)
	return Patch{Op: op, Target: target, Payload: wrapper.String()}
}
