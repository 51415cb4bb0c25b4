package main

import (
	"fmt"
	"regexp"
	"strings"
)

// search types
const (
	searchTypeBasic    = "basic"
	searchTypeAdvanced = "advanced"
)

// boolean operators
const (
	opAND = "AND"
	opOR  = "OR"
	opNOT = "NOT"
)

// queryNode is either a single search term bound to a handler, or a group
// of child nodes joined by a boolean operator.  a basic search is a bare
// term; an advanced search is a group of groups of terms.
type queryNode struct {
	group    bool
	lookfor  string // term only
	handler  string // term only
	operator string // group only
	children []*queryNode
}

func newQueryTerm(lookfor, handler string) *queryNode {
	return &queryNode{lookfor: lookfor, handler: handler}
}

func newQueryGroup(operator string, children ...*queryNode) *queryNode {
	return &queryNode{group: true, operator: operator, children: children}
}

func validOperator(operator string) bool {
	switch operator {
	case opAND, opOR, opNOT:
		return true
	}

	return false
}

func (q *queryNode) clone() *queryNode {
	if q == nil {
		return nil
	}

	node := *q

	node.children = nil
	for _, child := range q.children {
		node.children = append(node.children, child.clone())
	}

	return &node
}

// allTerms collects the text of every nonempty term in the tree, depth-first.
func (q *queryNode) allTerms() []string {
	if q == nil {
		return nil
	}

	if q.group == false {
		if strings.TrimSpace(q.lookfor) == "" {
			return nil
		}

		return []string{q.lookfor}
	}

	var terms []string

	for _, child := range q.children {
		terms = append(terms, child.allTerms()...)
	}

	return terms
}

func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// containsTerm reports whether the given word appears in any term of the
// tree, respecting word boundaries.
func (q *queryNode) containsTerm(term string) bool {
	if q == nil || strings.TrimSpace(term) == "" {
		return false
	}

	re := termPattern(term)

	for _, lookfor := range q.allTerms() {
		if re.MatchString(lookfor) == true {
			return true
		}
	}

	return false
}

// replaceTerm rewrites every whole-word occurrence of a term across the tree.
func (q *queryNode) replaceTerm(from, to string) {
	if q == nil || strings.TrimSpace(from) == "" {
		return
	}

	if q.group == false {
		q.lookfor = termPattern(from).ReplaceAllString(q.lookfor, to)
		return
	}

	for _, child := range q.children {
		child.replaceTerm(from, to)
	}
}

// render produces the human-readable form of the tree.  terms searched
// under a non-default handler are prefixed with that handler's translated
// label; groups are parenthesized and joined by their translated operator.
func (q *queryNode) render(t translator, opts *searchOptions, topLevel bool) string {
	if q == nil {
		return ""
	}

	if q.group == false {
		lookfor := strings.TrimSpace(q.lookfor)
		if lookfor == "" {
			return ""
		}

		if q.handler == "" || q.handler == opts.getDefaultHandler() {
			return lookfor
		}

		return fmt.Sprintf(`%s: "%s"`, opts.handlerLabel(t, q.handler), lookfor)
	}

	var pieces []string

	for _, child := range q.children {
		if piece := child.render(t, opts, false); piece != "" {
			pieces = append(pieces, piece)
		}
	}

	switch len(pieces) {
	case 0:
		return ""
	case 1:
		if topLevel == true {
			return pieces[0]
		}
	}

	joined := strings.Join(pieces, fmt.Sprintf(" %s ", t.localize(q.operator)))

	if topLevel == true {
		return joined
	}

	return fmt.Sprintf("(%s)", joined)
}

func exportQueryNode(q *queryNode) *SearchQueryNode {
	if q == nil {
		return nil
	}

	if q.group == false {
		return &SearchQueryNode{Lookfor: q.lookfor, Handler: q.handler}
	}

	node := SearchQueryNode{Operator: q.operator}

	for _, child := range q.children {
		node.Queries = append(node.Queries, *exportQueryNode(child))
	}

	return &node
}
