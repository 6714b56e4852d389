package dumb

// assignment binds the top of the stack to the identifier declared in
// region, which must hold exactly an identifier and a type name.
func (exec *Execution) assignment(region []string) error {
	if err := exec.pushFrame(regionAssignment, region); err != nil {
		return err
	}
	defer exec.popFrame()

	switch {
	case len(region) < 2:
		return exec.errorAt(ErrInvalidAssignment, "too few arguments to variable assignment")
	case len(region) > 2:
		exec.setPos(2)
		return exec.errorAt(ErrInvalidAssignment, "too many arguments to variable assignment")
	}

	name, typeName := region[0], region[1]
	exec.setPos(1)
	if !isTypeName(typeName) {
		return exec.errorAt(ErrInvalidAssignment, "invalid type %q", typeName)
	}
	if len(exec.session.stack) < 1 {
		return exec.errorAt(ErrStackUnderflow, "no elements in the stack for assignment")
	}
	exec.setPos(0)
	if !isValidIdentifier(name) {
		return exec.errorAt(ErrInvalidAssignment, "identifier %q is not a valid one", name)
	}

	exec.session.vars.Assign(name, exec.pop())
	exec.logger.Trace().Str("identifier", name).Msg("assign")
	return nil
}
