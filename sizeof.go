package reactor

// cacheLineSize is the assumed CPU cache line size used to pad the hot
// global state machine word (globalState) apart from its neighbours,
// avoiding false sharing between cores.
const cacheLineSize = 64
