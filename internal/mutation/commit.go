package mutation

// Commit tracks one in-flight reconciliation. The local apply has already
// happened when a Commit is returned; Wait blocks until the remote call
// settled and the id swap or rollback completed.
type Commit struct {
	done chan struct{}
	err  error
}

func newCommit() *Commit {
	return &Commit{done: make(chan struct{})}
}

func (c *Commit) settle(err error) {
	c.err = err
	close(c.done)
}

// Wait blocks until reconciliation finished and returns its outcome.
func (c *Commit) Wait() error {
	<-c.done
	return c.err
}

// Done exposes the settle signal for select loops.
func (c *Commit) Done() <-chan struct{} {
	return c.done
}

// settled returns an already-resolved commit.
func settled(err error) *Commit {
	c := newCommit()
	c.settle(err)
	return c
}
