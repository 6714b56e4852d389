package dumb

func (exec *Execution) pushFrame(region string, tokens []string) error {
	if exec.recursionCap > 0 && len(exec.frames) >= exec.recursionCap {
		return exec.errorAt(ErrRecursionLimit, "region nesting depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.frames = append(exec.frames, regionFrame{region: region, tokens: tokens})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.frames) == 0 {
		return
	}
	exec.frames = exec.frames[:len(exec.frames)-1]
}

func (exec *Execution) setPos(pos int) {
	if len(exec.frames) == 0 {
		return
	}
	exec.frames[len(exec.frames)-1].pos = pos
}
