package graph

import (
	"container/list"
	"sort"
)

// ProcessingQueue is a FIFO of frames for breadth-first traversal.
type ProcessingQueue struct {
	queue *list.List
}

// NewProcessingQueue creates a new empty processing queue.
func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{
		queue: list.New(),
	}
}

// Enqueue adds a frame to the back of the queue.
func (pq *ProcessingQueue) Enqueue(frame int) {
	pq.queue.PushBack(frame)
}

// Dequeue removes and returns the frame at the front of the queue.
// Returns 0 and false if the queue is empty.
func (pq *ProcessingQueue) Dequeue() (int, bool) {
	if pq.queue.Len() == 0 {
		return 0, false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(int), true
}

// Len returns the number of frames in the queue.
func (pq *ProcessingQueue) Len() int {
	return pq.queue.Len()
}

// IsEmpty returns true if the queue has no frames.
func (pq *ProcessingQueue) IsEmpty() bool {
	return pq.queue.Len() == 0
}

// Components returns the connected components of the undirected view. Each
// component is sorted and components are ordered by their smallest frame.
func (g *Graph) Components() [][]int {
	visited := make(map[int]bool, len(g.Nodes))
	var components [][]int

	for _, start := range g.AllNodes() {
		if visited[start] {
			continue
		}
		component := g.reach(start, visited)
		sort.Ints(component)
		components = append(components, component)
	}
	return components
}

func (g *Graph) reach(start int, visited map[int]bool) []int {
	pq := NewProcessingQueue()
	pq.Enqueue(start)
	visited[start] = true

	var out []int
	for !pq.IsEmpty() {
		frame, _ := pq.Dequeue()
		out = append(out, frame)
		for _, n := range g.SortedNeighbors(frame) {
			if !visited[n] {
				visited[n] = true
				pq.Enqueue(n)
			}
		}
	}
	return out
}
