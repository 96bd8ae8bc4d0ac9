package keylock

func (k *KeyLock) Size() int { return k.size() }
