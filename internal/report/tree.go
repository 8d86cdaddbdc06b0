package report

import (
	"github.com/akyairhashvil/cohortops/internal/models"
	"go.uber.org/zap"
)

const (
	taskTreeWarnDepth       = 20
	taskTreeMaxDepthDefault = 100
)

// TaskNode is a task with its sub-tasks and its depth once flattened.
type TaskNode struct {
	models.Task
	Subtasks []TaskNode
	Level    int
}

// BuildHierarchy organizes a flat task list into a tree by ParentID. A task
// whose parent is not in the list becomes a root.
func BuildHierarchy(tasks []models.Task) []TaskNode {
	nodes := make([]*TaskNode, len(tasks))
	byID := make(map[int64]*TaskNode, len(tasks))
	for i := range tasks {
		nodes[i] = &TaskNode{Task: tasks[i]}
		byID[tasks[i].ID] = nodes[i]
	}

	children := make(map[int64][]*TaskNode)
	var roots []*TaskNode
	for _, n := range nodes {
		if n.ParentID != nil {
			if _, ok := byID[*n.ParentID]; ok {
				children[*n.ParentID] = append(children[*n.ParentID], n)
				continue
			}
		}
		roots = append(roots, n)
	}

	var attach func(n *TaskNode, seen map[int64]bool) TaskNode
	attach = func(n *TaskNode, seen map[int64]bool) TaskNode {
		out := TaskNode{Task: n.Task}
		if seen[n.ID] {
			return out
		}
		seen[n.ID] = true
		for _, c := range children[n.ID] {
			out.Subtasks = append(out.Subtasks, attach(c, seen))
		}
		return out
	}
	seen := make(map[int64]bool, len(nodes))
	out := make([]TaskNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, attach(r, seen))
	}
	return out
}

// Flatten walks the tree depth-first, setting Level on each node.
func Flatten(nodes []TaskNode, maxDepth int) []TaskNode {
	if maxDepth <= 0 {
		maxDepth = taskTreeMaxDepthDefault
	}
	warned := false
	return flatten(nodes, 0, maxDepth, &warned)
}

func flatten(nodes []TaskNode, level, maxDepth int, warned *bool) []TaskNode {
	var out []TaskNode
	for _, n := range nodes {
		if level >= maxDepth {
			if !*warned {
				zap.L().Warn("task tree truncated", zap.Int("max_depth", maxDepth))
				*warned = true
			}
			break
		}
		if level >= taskTreeWarnDepth && !*warned {
			zap.L().Warn("task tree unusually deep", zap.Int("depth", level))
			*warned = true
		}
		n.Level = level
		out = append(out, n)
		if len(n.Subtasks) > 0 {
			out = append(out, flatten(n.Subtasks, level+1, maxDepth, warned)...)
		}
	}
	return out
}
