package linkedlist

import (
	"errors"
)

// Node is the generic LinkedList Node type, any ValueType supported
//
// Stores links to both neighbours so a Node can be moved or removed in O(1)
type Node[ValueType any] struct {
	Value ValueType

	prev *Node[ValueType]
	next *Node[ValueType]
	list *LinkedList[ValueType]
}

// Next returns the following Node or nil
func (n *Node[ValueType]) Next() *Node[ValueType] {
	return n.next
}

// Prev returns the preceding Node or nil
func (n *Node[ValueType]) Prev() *Node[ValueType] {
	return n.prev
}

// LinkedList is a doubly linked list that stores first and last element
//
// Not safe for concurrent use, the owner (e.g. a cache) holds the lock
type LinkedList[ValueType any] struct {
	head   *Node[ValueType]
	tail   *Node[ValueType]
	length int
}

// ErrInvalidIndex describes an error when there is anything wrong with given index, e.g. length=0 or index<0
var ErrInvalidIndex = errors.New("invalid index")

// ErrForeignNode is returned when a Node from another list (or an already removed one) is passed
var ErrForeignNode = errors.New("node doesn't belong to this list")

// NewLinkedList creates a new LinkedList with given ValueType, any ValueType is supported
func NewLinkedList[ValueType any]() *LinkedList[ValueType] {
	return &LinkedList[ValueType]{}
}

//region insert

// PushFront inserts a value before the first Node and returns its Node
func (l *LinkedList[ValueType]) PushFront(data ValueType) *Node[ValueType] {
	node := &Node[ValueType]{Value: data, next: l.head, list: l}
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.length++
	return node
}

// PushBack inserts a value after the last Node and returns its Node
func (l *LinkedList[ValueType]) PushBack(data ValueType) *Node[ValueType] {
	node := &Node[ValueType]{Value: data, prev: l.tail, list: l}
	if l.tail != nil {
		l.tail.next = node
	}
	l.tail = node
	if l.head == nil {
		l.head = node
	}
	l.length++
	return node
}

//endregion

//region remove

// Remove unlinks the node
func (l *LinkedList[ValueType]) Remove(node *Node[ValueType]) error {
	if node == nil || node.list != l {
		return ErrForeignNode
	}
	l.unlink(node)
	node.list = nil
	l.length--
	return nil
}

// RemoveLast unlinks the last Node and returns its value
func (l *LinkedList[ValueType]) RemoveLast() (ValueType, error) {
	if l.tail == nil {
		return *new(ValueType), ErrInvalidIndex
	}
	node := l.tail
	_ = l.Remove(node)
	return node.Value, nil
}

func (l *LinkedList[ValueType]) unlink(node *Node[ValueType]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

//endregion

//region get

// Front returns the first Node or nil
func (l *LinkedList[ValueType]) Front() *Node[ValueType] {
	return l.head
}

// Back returns the last Node or nil
func (l *LinkedList[ValueType]) Back() *Node[ValueType] {
	return l.tail
}

// GetAt walks the list from the head
func (l *LinkedList[ValueType]) GetAt(index int) (ValueType, error) {
	if index < 0 || index >= l.length {
		return *new(ValueType), ErrInvalidIndex
	}
	current := l.head
	for i := 0; i < index; i++ {
		current = current.next
	}
	return current.Value, nil
}

// Len returns the amount of Nodes
func (l *LinkedList[_]) Len() int {
	return l.length
}

// Values copies the values from head to tail
func (l *LinkedList[ValueType]) Values() []ValueType {
	values := make([]ValueType, 0, l.length)
	for node := l.head; node != nil; node = node.next {
		values = append(values, node.Value)
	}
	return values
}

//endregion

// MoveToFront moves the node to index 0
func (l *LinkedList[ValueType]) MoveToFront(node *Node[ValueType]) error {
	if node == nil || node.list != l {
		return ErrForeignNode
	}
	// no need to move otherwise
	if l.head == node {
		return nil
	}
	l.unlink(node)
	node.next = l.head
	l.head.prev = node
	l.head = node
	return nil
}
