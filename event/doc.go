// Package event defines the decoded events produced by the pipeline and
// the sink that receives them.
//
// Every event carries an inclusive sample [Span]. Concrete event types form
// a closed set identified by [Kind]; consumers switch on the dynamic type:
//
//	switch e := ev.(type) {
//	case event.PID:
//	    fmt.Println(e.PID, e.Flag)
//	case event.Field:
//	    fmt.Println(e.Name, e.Value)
//	}
//
// Producers emit events in sample order and call [Sink.Commit] after each
// packet or bus event. A [Recorder] keeps everything in memory.
package event
