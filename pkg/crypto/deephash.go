package crypto

import (
	"crypto/sha512"
	"strconv"
)

// DeepHashItem is one node of the canonical hash tree: either a byte-string
// leaf or an ordered list of child items. The two cases stay distinct even
// when empty, so a zero-length blob and a zero-element list never collide.
type DeepHashItem struct {
	blob   []byte
	list   []DeepHashItem
	isList bool
}

// BlobItem wraps a byte string as a leaf.
func BlobItem(data []byte) DeepHashItem {
	return DeepHashItem{blob: data}
}

// ListItem wraps an ordered sequence of child items.
func ListItem(items ...DeepHashItem) DeepHashItem {
	return DeepHashItem{list: items, isList: true}
}

// DeepHash computes the network's canonical 48-byte digest of an item tree.
//
// A leaf of length L hashes as SHA384(SHA384("blob"+L) || SHA384(data)),
// with L rendered as ASCII decimal. A list of N children starts from
// SHA384("list"+N) and folds each child in order with
// acc = SHA384(acc || DeepHash(child)). Both the shape of the tree and the
// order of every list are therefore part of the digest.
func DeepHash(item DeepHashItem) [48]byte {
	if item.isList {
		tag := []byte("list" + strconv.Itoa(len(item.list)))
		acc := sha512.Sum384(tag)
		for _, child := range item.list {
			childHash := DeepHash(child)
			acc = sha512.Sum384(append(acc[:], childHash[:]...))
		}
		return acc
	}

	tag := []byte("blob" + strconv.Itoa(len(item.blob)))
	tagHash := sha512.Sum384(tag)
	dataHash := sha512.Sum384(item.blob)
	return sha512.Sum384(append(tagHash[:], dataHash[:]...))
}
