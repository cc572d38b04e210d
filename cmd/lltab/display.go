package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/predictive"
	"github.com/npillmayer/lltab/session"
)

func (intp *Intp) printRules() {
	g := intp.session.Grammar()
	pterm.DefaultSection.Println("Grammar " + g.Name)
	data := pterm.TableData{{"#", "Rule"}}
	for _, r := range g.Rules() {
		data = append(data, []string{fmt.Sprintf("%d", r.Serial), r.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) printSets() {
	pterm.DefaultSection.Println("FIRST and FOLLOW sets")
	pterm.DefaultTable.WithHasHeader().WithData(setsTable(intp.session)).Render()
}

func setsTable(s *session.Session) pterm.TableData {
	data := pterm.TableData{{"Non-terminal", "FIRST", "FOLLOW"}}
	for _, A := range s.Grammar().NonTerminals() {
		data = append(data, []string{A.Name, symbolSet(s.First(A)), symbolSet(s.Follow(A))})
	}
	return data
}

func symbolSet(syms []*ll.Symbol) string {
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = sym.Name
	}
	return "{ " + strings.Join(names, ", ") + " }"
}

func (intp *Intp) printTable() {
	pterm.DefaultSection.Println("LL(1) parsing table")
	pterm.DefaultTable.WithHasHeader().WithData(parsingTable(intp.session.Table())).Render()
}

// parsingTable has one row per non-terminal and one column per terminal,
// plus the end-marker.
func parsingTable(t *ll.Table) pterm.TableData {
	g := t.Grammar()
	header := []string{""}
	for _, a := range g.Lookaheads() {
		header = append(header, a.Name)
	}
	data := pterm.TableData{header}
	var row []string
	for _, e := range t.Entries() {
		if row == nil {
			row = []string{e.NonTerminal.Name}
		}
		cell := ""
		if e.Rule != nil {
			cell = e.Rule.String()
		}
		row = append(row, cell)
		if len(row) == len(header) {
			data = append(data, row)
			row = nil
		}
	}
	return data
}

func (intp *Intp) printSteps(result session.Result) {
	data := pterm.TableData{{"Stack", "Input", "Action"}}
	for _, step := range result.Trace {
		data = append(data, []string{step.StackString(), step.InputString(), step.Action.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTree(root *predictive.Node) {
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(treeList(root))).Render()
}

// treeList flattens a parse tree. Inner nodes show the rule they have been
// expanded with, leafs show the matched token.
func treeList(root *predictive.Node) pterm.LeveledList {
	var list pterm.LeveledList
	root.Walk(func(n *predictive.Node, depth int) {
		text := n.String()
		if !n.IsLeaf() {
			text = n.Rule.String()
		}
		list = append(list, pterm.LeveledListItem{Level: depth, Text: text})
	})
	return list
}
