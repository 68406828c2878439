package adaptivearray

// Iterator walks the logical slots of an Array in index order.
// Mutating the array while iterating invalidates the iterator.
type Iterator struct {
	a     *Array
	index int
}

func (a *Array) Iterator() *Iterator {
	return &Iterator{a: a, index: -1}
}

func (it *Iterator) Next() bool {
	if it.index+1 >= it.a.size {
		return false
	}
	it.index++
	return true
}

func (it *Iterator) Index() int {
	return it.index
}

func (it *Iterator) Value() int32 {
	return getBits(it.a.words, it.index, it.a.entropy, it.a.signed)
}
