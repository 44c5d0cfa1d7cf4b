package board

// Sliding-piece (bishop/rook) attacks via magic bitboards: for each square, a relevance
// mask (board rim excluded), a magic multiplier and a shift index a precomputed attack
// table keyed by (occupied & mask) * magic >> shift.
//
// The magic multipliers below are well-known deterministic constants, found by repeated
// trial-and-error search offline. Shipping them as constants, rather than generating them
// via a PRNG on startup, keeps attack tables byte-identical across machines and Go versions.

type magicEntry struct {
	mask  Bitboard
	magic uint64
	shift uint
}

var bishopMagicTable [64]magicEntry
var rookMagicTable [64]magicEntry

var bishopAttackTable [64][]Bitboard
var rookAttackTable [64][]Bitboard

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		initMagic(sq, Bishop, bishopMagicNumbers[sq], &bishopMagicTable[sq], &bishopAttackTable[sq])
		initMagic(sq, Rook, rookMagicNumbers[sq], &rookMagicTable[sq], &rookAttackTable[sq])
	}
}

func initMagic(sq Square, class Class, magic uint64, entry *magicEntry, table *[]Bitboard) {
	mask := relevanceMask(sq, class)
	bits := mask.PopCount()

	*entry = magicEntry{mask: mask, magic: magic, shift: uint(64 - bits)}
	*table = make([]Bitboard, 1<<bits)

	n := 1 << bits
	for i := 0; i < n; i++ {
		occ := occupancySubset(i, mask)
		idx := (uint64(occ) * magic) >> entry.shift
		(*table)[idx] = slidingAttacksSlow(sq, class, occ)
	}
}

// relevanceMask excludes the board rim: a blocker on the rim never changes the attack
// set of a slider whose ray terminates there regardless.
func relevanceMask(sq Square, class Class) Bitboard {
	full := slidingAttacksSlow(sq, class, EmptyBitboard)
	edges := (BitRank(Rank1).Union(BitRank(Rank8))).Difference(BitRank(sq.Rank())).
		Union((BitFile(FileA).Union(BitFile(FileH))).Difference(BitFile(sq.File())))
	return full.Difference(edges)
}

// occupancySubset maps index (0..2^bits) onto the i-th subset of mask's set bits, via
// the standard "bit i of index selects mask's i-th set bit" construction.
func occupancySubset(index int, mask Bitboard) Bitboard {
	var occ Bitboard
	i := 0
	for mask != 0 {
		var sq Square
		sq, mask = mask.PopFirst()
		if index&(1<<i) != 0 {
			occ = occ.Union(BitMask(sq))
		}
		i++
	}
	return occ
}

// slidingAttacksSlow computes attacks by ray-casting until blocked, for table generation.
func slidingAttacksSlow(sq Square, class Class, occupied Bitboard) Bitboard {
	var dirs []Direction
	switch class {
	case Bishop:
		dirs = DiagonalDirections
	case Rook:
		dirs = StraightDirections
	default:
		panic("slidingAttacksSlow: not a slider")
	}

	var ret Bitboard
	for _, dir := range dirs {
		cur := sq
		for {
			next, ok := cur.Next(dir)
			if !ok {
				break
			}
			ret = ret.Union(BitMask(next))
			if occupied.IsSet(next) {
				break
			}
			cur = next
		}
	}
	return ret
}

func bishopAttacks(sq Square, occupied Bitboard) Bitboard {
	e := bishopMagicTable[sq]
	idx := (uint64(occupied&e.mask) * e.magic) >> e.shift
	return bishopAttackTable[sq][idx]
}

func rookAttacks(sq Square, occupied Bitboard) Bitboard {
	e := rookMagicTable[sq]
	idx := (uint64(occupied&e.mask) * e.magic) >> e.shift
	return rookAttackTable[sq][idx]
}
