package db

// mergeSort sorts the chain starting at head and returns its new head.
// Recursion depth is logarithmic in the chain length.
func mergeSort(head *qNode) *qNode {
	if head == nil || head.next == nil {
		return head
	}

	right := split(head)
	return merge(mergeSort(head), mergeSort(right))
}

// split cuts the chain after its middle node and returns the second half.
func split(head *qNode) *qNode {
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}

	right := slow.next
	slow.next = nil
	return right
}

// merge takes from left on ties so the sort is stable.
func merge(left, right *qNode) *qNode {
	var dummy qNode
	tail := &dummy
	for left != nil && right != nil {
		if right.value < left.value {
			tail.next = right
			right = right.next
		} else {
			tail.next = left
			left = left.next
		}
		tail = tail.next
	}

	if left != nil {
		tail.next = left
	} else {
		tail.next = right
	}
	return dummy.next
}
