package dumb

// loop pops the iteration count and runs body that many times. Counts of
// zero or below skip the body entirely. Every iteration costs one step, so an
// empty body still observes the quota and cancellation.
func (exec *Execution) loop(body []string) error {
	if len(exec.session.stack) < 1 {
		return exec.errorAt(ErrStackUnderflow, "no arguments provided to loop in the stack, need 1, received 0")
	}
	times := exec.pop()

	exec.logger.Debug().
		Int64("times", times).
		Int("body", len(body)).
		Int("depth", len(exec.frames)).
		Msg("loop")

	for counter := int64(0); counter < times; counter++ {
		if err := exec.step(); err != nil {
			return err
		}
		if err := exec.run(regionLoop, body); err != nil {
			return err
		}
	}
	return nil
}
