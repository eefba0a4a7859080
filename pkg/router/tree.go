package router

import (
	"net/url"
	"strings"
)

// routeNode is a node of the matching tree.
type routeNode struct {
	// segment is the static path segment this node matches
	segment string

	// paramName is the parameter name (without : or *)
	paramName string

	// paramType is the expected parameter type ("string" or "int")
	paramType string

	// route is set when a route ends at this node
	route *Route

	// children are static segment children
	children []*routeNode

	// paramChild is the dynamic parameter child (:id)
	paramChild *routeNode

	// catchAllChild is the catch-all child (*rest)
	catchAllChild *routeNode
}

func (n *routeNode) findChild(segment string) *routeNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// matchChild finds the static child for segment, ignoring case unless
// sensitive is set.
func (n *routeNode) matchChild(segment string, sensitive bool) *routeNode {
	if sensitive {
		return n.findChild(segment)
	}
	for _, child := range n.children {
		if strings.EqualFold(child.segment, segment) {
			return child
		}
	}
	return nil
}

// insert returns the node for pattern, creating nodes as needed.
func (n *routeNode) insert(pattern string) *routeNode {
	current := n
	for _, seg := range splitPattern(pattern) {
		switch {
		case strings.HasPrefix(seg, "*"):
			if current.catchAllChild == nil {
				current.catchAllChild = &routeNode{paramName: seg[1:], paramType: "[]string"}
			}
			return current.catchAllChild
		case strings.HasPrefix(seg, ":"):
			name, typ := parseParamSegment(seg)
			if current.paramChild == nil {
				current.paramChild = &routeNode{paramName: name, paramType: typ}
			}
			current = current.paramChild
		default:
			child := current.findChild(seg)
			if child == nil {
				child = &routeNode{segment: seg}
				current.children = append(current.children, child)
			}
			current = child
		}
	}
	return current
}

// match walks the tree for segments, filling params. Static children are
// tried first, then the parameter child, then the catch-all.
func (n *routeNode) match(segments []string, params map[string]string, sensitive bool) *routeNode {
	if len(segments) == 0 {
		if n.route != nil {
			return n
		}
		return nil
	}

	seg, rest := segments[0], segments[1:]

	if child := n.matchChild(seg, sensitive); child != nil {
		if found := child.match(rest, params, sensitive); found != nil {
			return found
		}
	}

	if p := n.paramChild; p != nil {
		if value, ok := decodeParam(seg, p.paramType); ok {
			params[p.paramName] = value
			if found := p.match(rest, params, sensitive); found != nil {
				return found
			}
			delete(params, p.paramName)
		}
	}

	if c := n.catchAllChild; c != nil && c.route != nil {
		joined := strings.Join(segments, "/")
		if value, err := url.PathUnescape(joined); err == nil {
			params[c.paramName] = value
			return c
		}
	}

	return nil
}

// decodeParam unescapes a single segment. An encoded slash is refused so a
// parameter can never span segments.
func decodeParam(seg, typ string) (string, bool) {
	value, err := url.PathUnescape(seg)
	if err != nil || strings.Contains(value, "/") {
		return "", false
	}
	if typ == "int" && !isDigits(value) {
		return "", false
	}
	return value, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// splitPattern splits a route pattern into segments.
func splitPattern(pattern string) []string {
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, "/")
}

// parseParamSegment extracts name and type from a parameter segment.
// Input: ":id" or ":id:int" -> name="id", type="string" or "int"
func parseParamSegment(seg string) (name, paramType string) {
	seg = seg[1:]
	if idx := strings.Index(seg, ":"); idx != -1 {
		return seg[:idx], seg[idx+1:]
	}
	return seg, "string"
}
