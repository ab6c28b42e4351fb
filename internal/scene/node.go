package scene

import (
	"iter"

	"github.com/JackWithOneEye/weatherglass/internal/assets"
)

type Node struct {
	Name     string
	Position Vec3
	Rotation Vec3 // euler angles in radians
	Model    *assets.Model
	Texture  *TextureRef
	Children []*Node
	parent   *Node
}

func NewNode(name string, position Vec3) *Node {
	return &Node{Name: name, Position: position}
}

func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) Remove(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Walk yields n and all its descendants depth first.
func (n *Node) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

func (n *Node) Find(name string) *Node {
	for c := range n.Walk() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
