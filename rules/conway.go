package rules

/*
Apply returns a cell's next state under Conway's Game of Life (B3/S23).

	alive, 0-1 neighbors  -> dead (underpopulation)
	alive, 2-3 neighbors  -> alive
	alive, 4+ neighbors   -> dead (overpopulation)
	dead, exactly 3       -> alive (birth)
	dead, otherwise       -> dead
*/
func Apply(alive bool, neighbors int) bool {
	switch {
	case alive && neighbors <= 1:
		return false
	case alive && neighbors <= 3:
		return true
	case alive:
		return false
	default:
		return neighbors == 3
	}
}
